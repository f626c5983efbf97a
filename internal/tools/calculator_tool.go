package tools

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
)

var ErrDivisionByZero = errors.New("division by zero")

// CalculatorTool performs basic arithmetic
type CalculatorTool struct{}

func (c *CalculatorTool) Name() string {
	return "calculator"
}

func (c *CalculatorTool) Description() string {
	return "A simple calculator used to perform basic arithmetic operations"
}

func (c *CalculatorTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"num1": map[string]interface{}{"type": "number"},
		"num2": map[string]interface{}{"type": "number"},
		"operator": map[string]interface{}{
			"type": "string",
			"enum": []string{"+", "-", "*", "/", "**", "sqrt"},
		},
	}
}

func (c *CalculatorTool) RequiredParameters() []string {
	return []string{"num1", "num2", "operator"}
}

func (c *CalculatorTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	num1, ok := args["num1"].(float64)
	if !ok {
		return "", fmt.Errorf("num1 parameter must be a number")
	}
	num2, ok := args["num2"].(float64)
	if !ok {
		return "", fmt.Errorf("num2 parameter must be a number")
	}
	operator, _ := args["operator"].(string)

	var result float64
	switch operator {
	case "+":
		result = num1 + num2
	case "-":
		result = num1 - num2
	case "*":
		result = num1 * num2
	case "/":
		if num2 == 0 {
			return "", ErrDivisionByZero
		}
		result = num1 / num2
	case "**":
		result = math.Pow(num1, num2)
	case "sqrt":
		result = math.Sqrt(num1)
	default:
		return "Invalid operator", nil
	}

	return strconv.FormatFloat(result, 'f', -1, 64), nil
}
