package store

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BufferTestSuite struct {
	suite.Suite
	ctx       context.Context
	createSUT func(size int, options ...BufferOption) Buffer[string]
}

func NewBufferTestSuite(bufferFactory func(size int, options ...BufferOption) Buffer[string]) *BufferTestSuite {
	return &BufferTestSuite{
		createSUT: bufferFactory,
		ctx:       context.Background(),
	}
}

func (t *BufferTestSuite) TestAppendingAndLoading() {
	sut := t.createSUT(0)

	// Test loading an empty buffer
	values, err := sut.Load(t.ctx)
	require.NoError(t.T(), err)
	assert.Empty(t.T(), values)

	// Test values are loaded in the order they were appended
	expected := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		v := gofakeit.Word()
		expected = append(expected, v)
		require.NoError(t.T(), sut.Append(t.ctx, v))
	}

	values, err = sut.Load(t.ctx)
	require.NoError(t.T(), err)
	assert.Equal(t.T(), expected, values)

	// Test clearing the buffer
	require.NoError(t.T(), sut.Clear(t.ctx))
	values, err = sut.Load(t.ctx)
	require.NoError(t.T(), err)
	assert.Empty(t.T(), values)
}

func (t *BufferTestSuite) TestBoundedBuffer() {
	sut := t.createSUT(2)

	for _, v := range []string{"a", "b", "c"} {
		require.NoError(t.T(), sut.Append(t.ctx, v))
	}

	values, err := sut.Load(t.ctx)
	require.NoError(t.T(), err)
	assert.Equal(t.T(), []string{"b", "c"}, values)
}

func (t *BufferTestSuite) TestExpiry() {
	clk := clock.NewMock()
	sut := t.createSUT(0, WithExpiry(time.Minute), WithClock(clk))

	require.NoError(t.T(), sut.Append(t.ctx, "old"))
	clk.Add(40 * time.Second)
	require.NoError(t.T(), sut.Append(t.ctx, "new"))

	values, err := sut.Load(t.ctx)
	require.NoError(t.T(), err)
	assert.Equal(t.T(), []string{"old", "new"}, values)

	// Test the first value expires while the second does not
	clk.Add(30 * time.Second)
	values, err = sut.Load(t.ctx)
	require.NoError(t.T(), err)
	assert.Equal(t.T(), []string{"new"}, values)
}
