package dispatch

import (
	"math"
	"testing"

	"github.com/cottand/mdispatch/goreflect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct {
	balance int
}

func newDeposit() *MethodDispatcher[*account] {
	m := NewMethod[*account]("deposit", goreflect.New(), quiet())
	m.Register(intT)(func(a *account, args ...any) (any, error) {
		a.balance += args[0].(int)
		return a.balance, nil
	}).Register(floatT)(func(a *account, args ...any) (any, error) {
		a.balance += int(math.Round(args[0].(float64)))
		return a.balance, nil
	})
	return m
}

func TestMethodInvoke(t *testing.T) {
	deposit := newDeposit()
	acc := &account{}

	res, err := deposit.Invoke(acc, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, res)

	res, err = deposit.Invoke(acc, 2.6)
	require.NoError(t, err)
	assert.Equal(t, 8, res)

	_, err = deposit.Invoke(acc, "ten")
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Equal(t, 8, acc.balance)
}

func TestMethodBind(t *testing.T) {
	deposit := newDeposit()
	first, second := &account{}, &account{balance: 100}

	boundFirst := deposit.Bind(first)
	boundSecond := deposit.Bind(second)
	assert.Same(t, first, boundFirst.Receiver())
	assert.Equal(t, goreflect.Of[*account](), boundFirst.Owner())

	_, err := boundFirst.Call(1)
	require.NoError(t, err)
	res, err := boundSecond.Call(1.0)
	require.NoError(t, err)

	assert.Equal(t, 1, first.balance)
	assert.Equal(t, 101, res)
}

func TestMethodDispatchIgnoresReceiver(t *testing.T) {
	m := NewMethod[any]("describe", goreflect.New(), quiet())
	m.Register()(func(recv any, args ...any) (any, error) {
		return recv, nil
	})

	res, err := m.Invoke("receiver")
	require.NoError(t, err)
	assert.Equal(t, "receiver", res)
	assert.Equal(t, "<dispatched method describe>", m.String())
}
