package libs

import (
	"context"
	"errors"
)

// fakeGenerator scripts the gateway for pipeline tests.
type fakeGenerator struct {
	out string
	err error
}

func (f fakeGenerator) GenerateText(context.Context, string) (string, error) {
	return f.out, f.err
}

var errGatewayDown = errors.New("gateway unavailable")
