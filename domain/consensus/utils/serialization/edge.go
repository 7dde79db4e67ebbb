package serialization

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/prismnet/prismd/domain/consensus/model/externalapi"
)

// EdgeSize is the length of an encoded edge: the kind byte followed by the
// little-endian index.
const EdgeSize = 1 + 4

// GraphEdgeSize is the length of an encoded GraphEdge.
const GraphEdgeSize = 2*externalapi.DomainHashSize + EdgeSize

// SerializeEdge returns the canonical encoding of edge.
func SerializeEdge(edge externalapi.Edge) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, EdgeSize))
	err := WriteElement(buf, edge)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. bytes.Buffer writes never fail"))
	}
	return buf.Bytes()
}

// DeserializeEdge decodes an edge encoded by SerializeEdge.
func DeserializeEdge(edgeBytes []byte) (externalapi.Edge, error) {
	if len(edgeBytes) != EdgeSize {
		return externalapi.Edge{}, errors.Wrapf(errMalformed, "edge is %d bytes, while it should be %d",
			len(edgeBytes), EdgeSize)
	}
	var edge externalapi.Edge
	err := ReadElement(bytes.NewReader(edgeBytes), &edge)
	if err != nil {
		return externalapi.Edge{}, err
	}
	return edge, nil
}

// SerializeGraphEdge returns the encoding from || to || edge of graphEdge.
func SerializeGraphEdge(graphEdge externalapi.GraphEdge) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, GraphEdgeSize))
	err := WriteElements(buf, graphEdge.From, graphEdge.To, graphEdge.Edge)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. bytes.Buffer writes never fail"))
	}
	return buf.Bytes()
}
