package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ChicagoDave/massing/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		err      *errors.Error
		code     errors.Code
		expected string
	}{
		{
			name:     "not found",
			err:      errors.NotFoundf("box %q not found", "b1"),
			code:     errors.CodeNotFound,
			expected: `NOT_FOUND: box "b1" not found`,
		},
		{
			name:     "invalid argument",
			err:      errors.InvalidArgument("scale must be positive"),
			code:     errors.CodeInvalidArgument,
			expected: "INVALID_ARGUMENT: scale must be positive",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, tc.err.Error())
			s.Equal(tc.code, tc.err.Code)
		})
	}
}

func (s *ErrorsTestSuite) TestWrapKeepsCode() {
	base := errors.NotFoundf("box missing").WithMeta("box_id", "b1")
	wrapped := errors.Wrap(fmt.Errorf("lookup: %w", base), "translate failed")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("b1", wrapped.Meta["box_id"])
	s.True(errors.IsNotFound(wrapped))
	s.ErrorIs(wrapped, base)
	s.Equal("translate failed", errors.GetMessage(wrapped))
}

func (s *ErrorsTestSuite) TestWrapPlainError() {
	s.Nil(errors.Wrap(nil, "nothing"))

	wrapped := errors.Wrapf(stderrors.New("disk full"), "write %s", "events")
	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal("INTERNAL: write events: disk full", wrapped.Error())

	coded := errors.WrapWithCode(stderrors.New("bad yaml"), errors.CodeInvalidArgument, "load project")
	s.True(errors.IsInvalidArgument(coded))
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Equal(errors.CodeInternal, errors.GetCode(stderrors.New("x")))
	s.Equal(errors.CodeFailedPrecondition, errors.GetCode(errors.FailedPreconditionf("no camera")))
	s.Equal("x", errors.GetMessage(stderrors.New("x")))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	s.Equal(http.StatusBadRequest, errors.CodeInvalidArgument.HTTPStatus())
	s.Equal(http.StatusNotFound, errors.CodeNotFound.HTTPStatus())
	s.Equal(http.StatusConflict, errors.CodeFailedPrecondition.HTTPStatus())
	s.Equal(http.StatusInternalServerError, errors.Code("BOGUS").HTTPStatus())
}
