package policy

import "testing"

func TestNumericComparisonOps(t *testing.T) {
	receipt := map[string]interface{}{"n": 10}

	cases := []struct {
		op     Op
		value  float64
		passed bool
	}{
		{Gt, 10, false},
		{Gte, 10, true},
		{Lt, 10, false},
		{Lte, 10, true},
	}

	for _, c := range cases {
		rules := []Rule{{Name: "t", Pointer: "/n", Op: c.op, Value: c.value, Level: Error}}
		result, err := Evaluate(receipt, rules, false)
		if err != nil {
			t.Fatal(err)
		}
		if result.Outcomes[0].Passed != c.passed {
			t.Fatalf("op %s: expected passed=%v, got %v", c.op, c.passed, result.Outcomes[0].Passed)
		}
	}
}

func TestNumericStringCoercion(t *testing.T) {
	receipt := map[string]interface{}{"tokens": "1000"}
	rules := []Rule{{Name: "t", Pointer: "/tokens", Op: Gt, Value: 500.0, Level: Error}}

	result, err := Evaluate(receipt, rules, false)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Outcomes[0].Passed {
		t.Fatal("expected numeric-string coercion to pass Gt 500")
	}
}

func TestInOperatorFails(t *testing.T) {
	receipt := map[string]interface{}{"lang": "Rust"}
	rules := []Rule{{
		Name: "t", Pointer: "/lang", Op: In,
		Values: []interface{}{"Python", "Go"}, Level: Error,
	}}

	result, err := Evaluate(receipt, rules, false)
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcomes[0].Passed {
		t.Fatal("expected Rust not in [Python, Go] to fail")
	}
	if result.Passed {
		t.Fatal("expected overall gate to fail")
	}
}

func TestFailFastEvaluatesBothRulesBeforeStopping(t *testing.T) {
	receipt := map[string]interface{}{"a": 1, "b": 1}
	rules := []Rule{
		{Name: "pass", Pointer: "/a", Op: Eq, Value: 1.0, Level: Error},
		{Name: "fail", Pointer: "/b", Op: Eq, Value: 2.0, Level: Error},
		{Name: "never", Pointer: "/a", Op: Eq, Value: 1.0, Level: Error},
	}

	result, err := Evaluate(receipt, rules, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Outcomes) != 2 {
		t.Fatalf("expected fail_fast to stop after the first Error failure (2 rules evaluated), got %d", len(result.Outcomes))
	}
	if !result.Outcomes[0].Passed {
		t.Fatal("expected first rule (passing) to be evaluated and pass")
	}
	if result.Outcomes[1].Passed {
		t.Fatal("expected second rule to fail, triggering the stop")
	}
}

func TestScenarioS5PolicyPassesUnderBudget(t *testing.T) {
	receipt := map[string]interface{}{
		"derived": map[string]interface{}{
			"totals": map[string]interface{}{"tokens": 100000},
		},
	}
	rules := []Rule{{Name: "token-budget", Pointer: "/derived/totals/tokens", Op: Lte, Value: 500000.0, Level: Error}}

	result, err := Evaluate(receipt, rules, false)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Passed {
		t.Fatal("expected GateResult.passed == true")
	}
	if result.Errors != 0 {
		t.Fatalf("expected errors == 0, got %d", result.Errors)
	}
}

func TestAllowMissingPassesNonExistsRules(t *testing.T) {
	receipt := map[string]interface{}{}
	rules := []Rule{{Name: "t", Pointer: "/missing", Op: Gt, Value: 1.0, Level: Error, AllowMissing: true}}

	result, err := Evaluate(receipt, rules, false)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Outcomes[0].Passed {
		t.Fatal("expected allow_missing rule on a missing pointer to pass")
	}
}

func TestMissingPointerFailsWithoutAllowMissing(t *testing.T) {
	receipt := map[string]interface{}{}
	rules := []Rule{{Name: "t", Pointer: "/missing", Op: Gt, Value: 1.0, Level: Error}}

	result, err := Evaluate(receipt, rules, false)
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcomes[0].Passed {
		t.Fatal("expected missing pointer without allow_missing to fail")
	}
	want := "pointer '/missing' not found in receipt"
	if result.Outcomes[0].Message != want {
		t.Fatalf("expected message %q, got %q", want, result.Outcomes[0].Message)
	}
}

func TestExistsOp(t *testing.T) {
	receipt := map[string]interface{}{"a": 1}
	rules := []Rule{
		{Name: "present", Pointer: "/a", Op: Exists, Level: Error},
		{Name: "absent", Pointer: "/b", Op: Exists, Level: Error},
	}
	result, err := Evaluate(receipt, rules, false)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Outcomes[0].Passed {
		t.Fatal("expected /a to exist")
	}
	if result.Outcomes[1].Passed {
		t.Fatal("expected /b to not exist")
	}
}

func TestNegateInvertsOutcome(t *testing.T) {
	receipt := map[string]interface{}{"n": 10}
	rules := []Rule{{Name: "t", Pointer: "/n", Op: Gt, Value: 10.0, Negate: true, Level: Error}}
	result, err := Evaluate(receipt, rules, false)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Outcomes[0].Passed {
		t.Fatal("expected negate to invert Gt 10 (false) into a pass")
	}
}
