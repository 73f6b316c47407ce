package veg

import (
	"reflect"
	"testing"
)

var zoneVYaml = `
rules:
  - name: Zone V
    source: 15
    dest: 16
    conditions:
      - window:
          start_month: 3
          end_month: 5
        kind: any
        op: le
        threshold: 0
      - window:
          start_month: 4
          end_month: 9
        kind: frequency
        op: gt
        threshold: 0
        ratio: 0.2
`

func TestLoadRulesMatchesBuiltin(t *testing.T) {
	rules, err := LoadRules([]byte(zoneVYaml))
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %v", len(rules))
	}
	if !reflect.DeepEqual(rules[0], DefaultRules()[0]) {
		t.Errorf("yaml catalog differs from builtin:\n%+v\n%+v", rules[0], DefaultRules()[0])
	}
}

func TestLoadRulesRejectsBadRatio(t *testing.T) {
	bad := `
rules:
  - name: Bad
    source: 15
    dest: 16
    conditions:
      - window:
          start_month: 4
          end_month: 9
        kind: frequency
        op: gt
        threshold: 0
        ratio: 1.5
`
	if _, err := LoadRules([]byte(bad)); err == nil {
		t.Fatal("expected ratio validation error")
	}
}

func TestLoadRulesRejectsUnknownKind(t *testing.T) {
	bad := `
rules:
  - name: Bad
    source: 15
    dest: 16
    conditions:
      - window:
          start_month: 4
          end_month: 9
        kind: median
        op: gt
        threshold: 0
`
	if _, err := LoadRules([]byte(bad)); err == nil {
		t.Fatal("expected unknown kind error")
	}
}

func TestLoadRulesRejectsSelfTransition(t *testing.T) {
	bad := `
rules:
  - name: Bad
    source: 15
    dest: 15
    conditions:
      - window:
          start_month: 3
          end_month: 5
        kind: any
        op: le
        threshold: 0
`
	if _, err := LoadRules([]byte(bad)); err == nil {
		t.Fatal("expected self transition error")
	}
}
