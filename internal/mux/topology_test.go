package mux

import "testing"

func TestBuildTopology_Profile1(t *testing.T) {
	t.Parallel()
	cfg := &Config{OriginalNetworkID: 0x0640, Topology: TopologyConfig{Profile: Profile1}}
	svcs, err := buildTopology(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(svcs) != 2 {
		t.Fatalf("len(svcs) = %d, want 2", len(svcs))
	}
	if svcs[0].sid != 0xC800 {
		t.Errorf("full-seg sid = %#x, want 0xc800", svcs[0].sid)
	}
	if svcs[1].sid != 0xC809 {
		t.Errorf("one-seg sid = %#x, want 0xc809", svcs[1].sid)
	}
	if !svcs[1].oneSeg || svcs[0].oneSeg {
		t.Error("oneSeg flag mismatch")
	}
}

func TestBuildTopology_Profile3(t *testing.T) {
	t.Parallel()
	cfg := &Config{OriginalNetworkID: 0x0640, Topology: TopologyConfig{Profile: Profile3}}
	svcs, err := buildTopology(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(svcs) != 3 {
		t.Fatalf("len(svcs) = %d, want 3", len(svcs))
	}
	want := []uint16{0xC800, 0xC801, 0xC80C}
	for i, w := range want {
		if svcs[i].sid != w {
			t.Errorf("svcs[%d].sid = %#x, want %#x", i, svcs[i].sid, w)
		}
	}
}

func TestBuildTopology_DistinctSIDs(t *testing.T) {
	t.Parallel()
	for _, p := range []TransmissionProfile{ProfileDefault, Profile1, Profile2, Profile3} {
		cfg := &Config{OriginalNetworkID: 7, ServiceID: 42, Topology: TopologyConfig{Profile: p}}
		svcs, err := buildTopology(cfg)
		if err != nil {
			t.Fatal(err)
		}
		seen := make(map[uint16]bool)
		for _, s := range svcs {
			if seen[s.sid] {
				t.Errorf("profile %d: duplicate sid %#x", p, s.sid)
			}
			seen[s.sid] = true
		}
	}
}

func TestIsOneSeg(t *testing.T) {
	t.Parallel()
	if !isOneSeg(0xC809) {
		t.Error("0xC809 should be detected as one-seg")
	}
	if isOneSeg(0xC800) {
		t.Error("0xC800 should not be detected as one-seg")
	}
}
