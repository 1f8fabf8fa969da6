// internal/service/booking/infrastructure/rule/cel_engine.go
package rule

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"staybook/internal/service/booking/domain/port"
)

// CelRuleEngine 是 port.RuleEngine 接口的一个具体实现。
// 它用 CEL 表达式评估折扣的资格规则，例如 "nights >= 3" 或
// 'payment_type == "Cash" && room_count > 1'。
// 这是一个典型的适配器：把第三方表达式引擎适配到领域接口上。
type CelRuleEngine struct {
	env *cel.Env

	mu       sync.RWMutex
	programs map[string]cel.Program // 按规则文本缓存编译结果
}

// NewCelRuleEngine 创建规则引擎，声明规则可见的全部变量。
func NewCelRuleEngine() (*CelRuleEngine, error) {
	env, err := cel.NewEnv(
		cel.Variable("nights", cel.IntType),
		cel.Variable("payment_type", cel.StringType),
		cel.Variable("room_count", cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &CelRuleEngine{
		env:      env,
		programs: make(map[string]cel.Program),
	}, nil
}

// Evaluate 实现 port.RuleEngine。规则必须求值为布尔。
func (e *CelRuleEngine) Evaluate(ruleText string, fact port.Fact) (bool, error) {
	program, err := e.compile(ruleText)
	if err != nil {
		return false, err
	}

	out, _, err := program.Eval(map[string]interface{}{
		"nights":       int64(fact.Nights),
		"payment_type": fact.PaymentType,
		"room_count":   int64(fact.RoomCount),
	})
	if err != nil {
		return false, fmt.Errorf("rule evaluation failed: %w", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("rule %q did not evaluate to a boolean (got %T)", ruleText, out.Value())
	}
	return result, nil
}

func (e *CelRuleEngine) compile(ruleText string) (cel.Program, error) {
	e.mu.RLock()
	program, ok := e.programs[ruleText]
	e.mu.RUnlock()
	if ok {
		return program, nil
	}

	ast, issues := e.env.Compile(ruleText)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid rule %q: %w", ruleText, issues.Err())
	}
	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to build program for rule %q: %w", ruleText, err)
	}

	e.mu.Lock()
	e.programs[ruleText] = program
	e.mu.Unlock()
	return program, nil
}
