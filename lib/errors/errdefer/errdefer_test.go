package errdefer

import (
	"errors"
	"io"
	"testing"

	cerrors "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errBase     = errors.New("base error")
	errMarker   = errors.New("marker")
	errNotFound = errors.New("not found")
)

func TestMark(t *testing.T) {
	t.Run("defer usage pattern", func(t *testing.T) {
		fn := func() (err error) {
			defer Mark(&err, errMarker)
			return errBase
		}

		err := fn()
		require.NotNil(t, err)
		assert.True(t, cerrors.Is(err, errMarker))
		assert.True(t, cerrors.Is(err, errBase))
	})

	t.Run("nil error stays nil", func(t *testing.T) {
		fn := func() (err error) {
			defer Mark(&err, errMarker)
			return nil
		}
		assert.Nil(t, fn())
	})

	t.Run("nil pointer", func(t *testing.T) {
		Mark(nil, errMarker)
	})
}

func TestMarkIfIs(t *testing.T) {
	t.Run("matching target", func(t *testing.T) {
		err := cerrors.Wrap(io.EOF, "read row")
		MarkIfIs(&err, io.EOF, errNotFound)
		assert.True(t, cerrors.Is(err, errNotFound))
		assert.True(t, cerrors.Is(err, io.EOF))
	})

	t.Run("other error untouched", func(t *testing.T) {
		err := errBase
		MarkIfIs(&err, io.EOF, errNotFound)
		assert.False(t, cerrors.Is(err, errNotFound))
		assert.Same(t, errBase, err)
	})
}
