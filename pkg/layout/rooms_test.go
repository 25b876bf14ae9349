package layout

import (
	"reflect"
	"strings"
	"testing"
)

func TestRoomGraphDeterminism(t *testing.T) {
	for seed := uint64(0); seed < 25; seed++ {
		a := New(testConfig(seed)).GenerateRooms()
		b := New(testConfig(seed)).GenerateRooms()

		if len(a) != len(b) {
			t.Fatalf("seed %d: room counts differ: %d vs %d", seed, len(a), len(b))
		}
		for i := range a {
			if !reflect.DeepEqual(*a[i], *b[i]) {
				t.Fatalf("seed %d room %d differs:\n%+v\n%+v", seed, i, *a[i], *b[i])
			}
		}
	}
}

func TestRoomIDsSequential(t *testing.T) {
	rooms := New(testConfig(42)).GenerateRooms()
	for i, r := range rooms {
		if r.ID != i {
			t.Errorf("room %d has id %d", i, r.ID)
		}
	}
}

func TestRoomConnectionsSymmetric(t *testing.T) {
	rooms := New(testConfig(42)).GenerateRooms()
	for _, r := range rooms {
		for _, other := range r.Connections {
			if !rooms[other].Connected(r.ID) {
				t.Errorf("room %d connects to %d but not vice versa", r.ID, other)
			}
		}
	}
}

func TestRoomGraphConnected(t *testing.T) {
	// Connectivity from the ground-floor main hall must hold for every
	// seed and level count, not just the default.
	for seed := uint64(0); seed < 100; seed++ {
		for levels := 2; levels <= 6; levels++ {
			cfg := testConfig(seed)
			cfg.SetLevels(levels)
			if err := cfg.Validate(); err != nil {
				t.Fatalf("config invalid: %v", err)
			}

			rooms := New(cfg).GenerateRooms()
			if len(rooms) == 0 {
				t.Fatalf("seed %d levels %d: no rooms", seed, levels)
			}
			if rooms[0].Kind != KindMainHall || rooms[0].Level != 0 {
				t.Fatalf("seed %d levels %d: first room is %s on level %d",
					seed, levels, rooms[0].Kind, rooms[0].Level)
			}
			if got := ReachableFrom(rooms, 0); got != len(rooms) {
				t.Errorf("seed %d levels %d: %d of %d rooms reachable from main hall",
					seed, levels, got, len(rooms))
			}
		}
	}
}

func TestRoomLevelsPopulated(t *testing.T) {
	cfg := testConfig(7)
	cfg.SetLevels(5)
	rooms := New(cfg).GenerateRooms()

	levels := make(map[int]bool)
	for _, r := range rooms {
		levels[r.Level] = true
	}
	for level := 0; level < 5; level++ {
		if !levels[level] {
			t.Errorf("no rooms on level %d", level)
		}
	}
}

func TestRoomsToDOT(t *testing.T) {
	rooms := New(testConfig(42)).GenerateRooms()
	dot := RoomsToDOT(rooms)

	if !strings.HasPrefix(dot, "graph Base {") {
		t.Error("DOT output should be an undirected graph")
	}
	if !strings.Contains(dot, "main_hall 0") {
		t.Error("DOT output should label the main hall")
	}
	if !strings.Contains(dot, "--") {
		t.Error("DOT output should contain edges")
	}
	if !strings.Contains(dot, "cluster_level0") {
		t.Error("DOT output should cluster rooms by level")
	}
}
