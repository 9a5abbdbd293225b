package sta

// EndpointKind discriminates what sits at the other end of a connection:
// a pin node, a gate's output pin, or a gate's input pin. This is the
// tagged-variant realization of the "Element" runtime-type tag described
// in spec.md §9 (the original base class's GetType() becomes this enum,
// and downcasts become switches over Kind).
type EndpointKind int

const (
	EndpointNone EndpointKind = iota
	EndpointPinNode
	EndpointGOutPin
	EndpointGInPin
)

// Endpoint is a reference to one of a pin node, a gate output pin, or a
// gate input pin, all addressed as arena indices rather than pointers
// (spec.md §9's "arena + integer indices" design note). GateIndex is only
// meaningful for EndpointGOutPin/EndpointGInPin.
type Endpoint struct {
	Kind       EndpointKind
	GateIndex  int
	PinIndex   int // index into the gate's Inputs/Outputs, or into PinNodes
}

func (e Endpoint) IsZero() bool { return e.Kind == EndpointNone }

var noEndpoint = Endpoint{Kind: EndpointNone}

func pinNodeEndpoint(idx int) Endpoint {
	return Endpoint{Kind: EndpointPinNode, PinIndex: idx}
}

func gOutPinEndpoint(gateIdx, pinIdx int) Endpoint {
	return Endpoint{Kind: EndpointGOutPin, GateIndex: gateIdx, PinIndex: pinIdx}
}

func gInPinEndpoint(gateIdx, pinIdx int) Endpoint {
	return Endpoint{Kind: EndpointGInPin, GateIndex: gateIdx, PinIndex: pinIdx}
}
