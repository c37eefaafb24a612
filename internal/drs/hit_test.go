package drs

import "testing"

func TestFieldIDDeterministic(t *testing.T) {
	a := FieldID("dbA", "orders", "customer_id")
	b := FieldID("dbA", "orders", "customer_id")
	if a != b {
		t.Error("Expected identical ids for identical names")
	}
}

func TestFieldIDSeparatesComponents(t *testing.T) {
	// "ab"+"c" vs "a"+"bc" must not collide
	a := FieldID("ab", "c", "x")
	b := FieldID("a", "bc", "x")
	if a == b {
		t.Error("Expected component boundaries to affect the id")
	}
}

func TestTableHit(t *testing.T) {
	th := NewTableHit("dbA", "orders")
	if !th.IsTable() {
		t.Error("Expected table placeholder hit")
	}
	ch := NewHit("dbA", "orders", "order_id", 0)
	if ch.IsTable() {
		t.Error("Expected column hit")
	}
	if th.Nid == ch.Nid {
		t.Error("Table placeholder and column must have distinct ids")
	}
}

func TestParseRelationRoundTrip(t *testing.T) {
	for _, rel := range []Relation{RelSchema, RelSchemaSim, RelContentSim, RelPKFK, RelEntitySim} {
		got, err := ParseRelation(rel.String())
		if err != nil {
			t.Fatalf("ParseRelation(%s): %v", rel, err)
		}
		if got != rel {
			t.Errorf("Round trip failed for %s", rel)
		}
	}
	if _, err := ParseRelation("bogus"); err == nil {
		t.Error("Expected error for unknown relation")
	}
}
