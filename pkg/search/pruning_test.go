package search

import "testing"

func TestDuplicatePruningSkipsClosedOrNoBetterPath(t *testing.T) {
	var p DuplicatePruning

	if p.Skip(false, false, 5, 0) {
		t.Fatal("an unseen successor must never be skipped")
	}
	if !p.Skip(true, true, 5, 0) {
		t.Fatal("a closed record must always be skipped regardless of g")
	}
	if !p.Skip(true, false, 5, 3) {
		t.Fatal("a seen, open record with an equal-or-better existing g must be skipped")
	}
	if p.Skip(true, false, 2, 5) {
		t.Fatal("a strictly cheaper path to a seen, open record must not be skipped")
	}
}

func TestNoPruningNeverSkips(t *testing.T) {
	var p NoPruning
	if p.Skip(true, true, 5, 0) {
		t.Fatal("NoPruning must never discard a successor")
	}
	if p.Skip(false, false, 0, 0) {
		t.Fatal("NoPruning must never discard a successor")
	}
}
