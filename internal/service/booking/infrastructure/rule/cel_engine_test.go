// internal/service/booking/infrastructure/rule/cel_engine_test.go
package rule

import (
	"testing"

	"staybook/internal/service/booking/domain/port"
)

func TestCelRuleEngineEvaluate(t *testing.T) {
	engine, err := NewCelRuleEngine()
	if err != nil {
		t.Fatal(err)
	}

	fact := port.Fact{Nights: 4, PaymentType: "Cash", RoomCount: 2}

	tests := []struct {
		rule    string
		want    bool
		wantErr bool
	}{
		{rule: "nights >= 3", want: true},
		{rule: "nights >= 5", want: false},
		{rule: `payment_type == "Cash"`, want: true},
		{rule: `payment_type == "CreditCard"`, want: false},
		{rule: "room_count > 1 && nights >= 2", want: true},
		{rule: "nights + 1", wantErr: true},       // 非布尔结果
		{rule: "nights >>> 3", wantErr: true},     // 语法错误
		{rule: "unknown_var == 1", wantErr: true}, // 未声明的变量
	}

	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			got, err := engine.Evaluate(tt.rule, fact)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.rule, got, tt.want)
			}
		})
	}
}

func TestCelRuleEngineCachesPrograms(t *testing.T) {
	engine, err := NewCelRuleEngine()
	if err != nil {
		t.Fatal(err)
	}

	// 同一规则重复评估应复用编译结果，且不同 fact 得到不同结论
	for i := 0; i < 3; i++ {
		ok, err := engine.Evaluate("nights >= 3", port.Fact{Nights: 4})
		if err != nil || !ok {
			t.Fatalf("iteration %d: got (%v, %v)", i, ok, err)
		}
	}
	ok, err := engine.Evaluate("nights >= 3", port.Fact{Nights: 2})
	if err != nil || ok {
		t.Fatalf("cached program returned stale result: (%v, %v)", ok, err)
	}
	if len(engine.programs) != 1 {
		t.Errorf("expected 1 cached program, got %d", len(engine.programs))
	}
}
