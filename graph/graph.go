/*
Package graph projects stacks into a visual node/edge representation
and recovers stacks from graphs that still form a simple chain.

Recovery is deliberately conservative: anything but a single linear
path — branching, multiple or missing entry points, cycles, unreachable
nodes — is refused with ErrTopology rather than guessed at. Richer
diagrams must be simplified by the editor before converting back.
*/
package graph

import (
	"errors"
	"fmt"

	"github.com/patchbay/rack"
	"github.com/patchbay/rack/log"
	"github.com/patchbay/rack/stack"
)

var (
	// ErrTopology is returned when a graph has no valid linear
	// representation. An expected condition in an interactive editor,
	// not an exceptional one.
	ErrTopology = errors.New("graph is not a simple chain")
	// ErrUnresolvedCard is returned when a node's card cannot be
	// resolved by the provided resolver.
	ErrUnresolvedCard = errors.New("unresolved card")
)

type (
	// Node represents one stack entry. ID is the entry id.
	Node struct {
		ID     string
		CardID string
		Label  string
	}

	// Edge connects the named output port of one entry to the named
	// input port of another.
	Edge struct {
		Source     string
		Target     string
		SourcePort string
		TargetPort string
	}

	// Graph is the visual projection of a stack.
	Graph struct {
		Nodes []Node
		Edges []Edge
	}
)

// FromStack projects a stack into a graph with one node per entry. For
// serial stacks each adjacent pair is connected from the first output
// port to the first input port, falling back to "out" and "in" when a
// signature has no named port on that side. Non-serial modes emit nodes
// without edges: parallel, layer and tabs topologies are not
// linearizable the same way, a documented limitation.
func FromStack(s stack.Stack) Graph {
	g := Graph{Nodes: make([]Node, 0, len(s.Entries))}
	for _, e := range s.Entries {
		g.Nodes = append(g.Nodes, Node{ID: e.ID, CardID: e.Card.ID, Label: e.Card.Name})
	}
	if s.Mode != stack.Serial {
		return g
	}
	for i := 0; i < len(s.Entries)-1; i++ {
		left, right := s.Entries[i], s.Entries[i+1]
		g.Edges = append(g.Edges, Edge{
			Source:     left.ID,
			Target:     right.ID,
			SourcePort: firstName(left.Card.Signature.Outputs, "out"),
			TargetPort: firstName(right.Card.Signature.Inputs, "in"),
		})
	}
	return g
}

func firstName(ports []rack.Port, fallback string) string {
	if len(ports) == 0 {
		return fallback
	}
	return ports[0].Name
}

// ToStack recovers a serial stack from a graph. It succeeds only for a
// simple path: exactly one node without incoming edges, no node with
// more than one outgoing edge, no cycles and no unreachable nodes.
// Every node's card must resolve through getCard. Recovery is
// all-or-nothing: any violation returns the zero stack and either
// ErrTopology or ErrUnresolvedCard, never a partial result.
func ToStack(g Graph, getCard func(cardID string) (*rack.Card, bool), options ...stack.Option) (stack.Stack, error) {
	logger := log.GetLogger()
	if len(g.Nodes) == 0 {
		return stack.New(nil, stack.Serial, options...), nil
	}

	nodes := make(map[string]Node, len(g.Nodes))
	inDegree := make(map[string]int, len(g.Nodes))
	next := make(map[string]string, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes[n.ID] = n
		inDegree[n.ID] = 0
	}
	for _, e := range g.Edges {
		if _, ok := nodes[e.Source]; !ok {
			return stack.Stack{}, fmt.Errorf("%w: edge from unknown node %s", ErrTopology, e.Source)
		}
		if _, ok := nodes[e.Target]; !ok {
			return stack.Stack{}, fmt.Errorf("%w: edge to unknown node %s", ErrTopology, e.Target)
		}
		if _, ok := next[e.Source]; ok {
			logger.Debugf("graph: node %s branches", e.Source)
			return stack.Stack{}, fmt.Errorf("%w: node %s has more than one outgoing edge", ErrTopology, e.Source)
		}
		next[e.Source] = e.Target
		inDegree[e.Target]++
	}

	start := ""
	for id, deg := range inDegree {
		if deg > 0 {
			continue
		}
		if start != "" {
			return stack.Stack{}, fmt.Errorf("%w: multiple entry nodes", ErrTopology)
		}
		start = id
	}
	if start == "" {
		// every node has an incoming edge, so the graph cycles.
		return stack.Stack{}, fmt.Errorf("%w: no entry node", ErrTopology)
	}

	visited := make(map[string]bool, len(nodes))
	cards := make([]*rack.Card, 0, len(nodes))
	for id := start; id != ""; id = next[id] {
		if visited[id] {
			return stack.Stack{}, fmt.Errorf("%w: cycle at node %s", ErrTopology, id)
		}
		visited[id] = true
		n := nodes[id]
		card, ok := getCard(n.CardID)
		if !ok {
			logger.Debugf("graph: card %s of node %s did not resolve", n.CardID, id)
			return stack.Stack{}, fmt.Errorf("%w: card %s", ErrUnresolvedCard, n.CardID)
		}
		cards = append(cards, card)
	}
	if len(visited) != len(nodes) {
		return stack.Stack{}, fmt.Errorf("%w: %d nodes unreachable from entry", ErrTopology, len(nodes)-len(visited))
	}

	return stack.New(cards, stack.Serial, options...), nil
}
