package invoker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation_String(t *testing.T) {
	op := Operation{
		Program: "az",
		Args:    []string{"ml", "data", "create", "--path", "data/used cars.csv", "--set-traffic", "blue=100", ""},
	}
	assert.Equal(t, `az ml data create --path 'data/used cars.csv' --set-traffic blue=100 ''`, op.String())
}

func TestOperation_StringQuotesSingleQuote(t *testing.T) {
	op := Operation{Program: "echo", Args: []string{"it's"}}
	assert.Equal(t, `echo 'it'\''s'`, op.String())
}

func TestResult_Output(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{"stdout only", Result{Stdout: "ok\n"}, "ok"},
		{"stderr only", Result{Stderr: "boom\n"}, "boom"},
		{"both", Result{Stdout: "partial\n", Stderr: "boom"}, "partial\nboom"},
		{"neither", Result{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.Output())
		})
	}
}

func TestFunc_Invoke(t *testing.T) {
	var got Operation
	inv := Func(func(_ context.Context, op Operation) Result {
		got = op
		return Result{Success: true, Stdout: "done"}
	})

	res := inv.Invoke(context.Background(), Operation{Program: "az", Description: "login"})

	assert.True(t, res.Success)
	assert.Equal(t, "login", got.Description)
}
