package mockinvoker

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/saiyam1814/kubectl-ingress/pkg/invoker"
)

type Invoker struct {
	mock.Mock
}

var _ invoker.Invoker = (*Invoker)(nil)

func (m *Invoker) Submit(ctx context.Context, verb invoker.Verb, manifest []byte, args []string) error {
	ret := m.Called(verb, string(manifest), args)
	return ret.Error(0)
}

func (m *Invoker) Run(ctx context.Context, args []string) error {
	ret := m.Called(args)
	return ret.Error(0)
}

func New() *Invoker {
	return new(Invoker)
}
