package layout

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// shape per room kind, for quick visual scanning of the plan.
var roomKindShapes = map[RoomKind]string{
	KindMainHall:      "doubleoctagon",
	KindCorridor:      "box",
	KindSideChamber:   "ellipse",
	KindEquipmentRoom: "component",
	KindStairwell:     "diamond",
	KindBalcony:       "house",
}

// RoomsToDOT returns a Graphviz DOT representation of the room graph,
// clustered by level. The output can be rendered with Graphviz tools or
// programmatically with RenderRoomsSVG.
func RoomsToDOT(rooms []*Room) string {
	var buf bytes.Buffer
	buf.WriteString("graph Base {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, style=filled, fillcolor=white];\n\n")

	byLevel := make(map[int][]*Room)
	maxLevel := 0
	for _, r := range rooms {
		byLevel[r.Level] = append(byLevel[r.Level], r)
		if r.Level > maxLevel {
			maxLevel = r.Level
		}
	}

	for level := 0; level <= maxLevel; level++ {
		if len(byLevel[level]) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "  subgraph cluster_level%d {\n", level)
		fmt.Fprintf(&buf, "    label=\"level %d\";\n", level)
		for _, r := range byLevel[level] {
			fmt.Fprintf(&buf, "    r%d [label=\"%s %d\", shape=%s];\n",
				r.ID, r.Kind, r.ID, roomKindShapes[r.Kind])
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, r := range rooms {
		for _, other := range r.Connections {
			if r.ID < other { // undirected: emit each edge once
				fmt.Fprintf(&buf, "  r%d -- r%d;\n", r.ID, other)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderRoomsSVG renders the room graph as an SVG image via Graphviz.
func RenderRoomsSVG(rooms []*Room) ([]byte, error) {
	dot := RoomsToDOT(rooms)

	gv, err := graphviz.New(context.Background())
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(context.Background(), g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
