package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	capacity int
	name     string
	readOnly bool
	calls    []string
}

func (c *testConfig) setCapacity(n int) error {
	if n < 0 {
		return errors.New("capacity cannot be negative")
	}
	c.capacity = n
	c.calls = append(c.calls, "capacity")

	return nil
}

type validatedConfig struct {
	min, max int
}

func (c *validatedConfig) Validate() error {
	if c.min > c.max {
		return errors.New("min exceeds max")
	}

	return nil
}

func withCapacity(n int) Option[*testConfig] {
	return New(func(c *testConfig) error { return c.setCapacity(n) })
}

func withName(name string) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.name = name
		c.calls = append(c.calls, "name")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &testConfig{}

		err := Apply(cfg, withCapacity(8), withName("root"), NoError(func(c *testConfig) { c.readOnly = true }))
		require.NoError(t, err)
		require.Equal(t, 8, cfg.capacity)
		require.Equal(t, "root", cfg.name)
		require.True(t, cfg.readOnly)
		require.Equal(t, []string{"capacity", "name"}, cfg.calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &testConfig{}

		err := Apply(cfg, withCapacity(4), withCapacity(-1), withName("skipped"))
		require.EqualError(t, err, "capacity cannot be negative")
		require.Equal(t, 4, cfg.capacity)
		require.Empty(t, cfg.name)
	})

	t.Run("empty and nil options", func(t *testing.T) {
		cfg := &testConfig{}

		require.NoError(t, Apply(cfg))
		require.NoError(t, Apply[*testConfig](cfg, nil))
		require.Zero(t, cfg.capacity)
	})
}

func TestApply_Validator(t *testing.T) {
	withRange := func(lo, hi int) Option[*validatedConfig] {
		return NoError(func(c *validatedConfig) { c.min, c.max = lo, hi })
	}

	require.NoError(t, Apply(&validatedConfig{}, withRange(1, 2)))
	require.EqualError(t, Apply(&validatedConfig{}, withRange(3, 2)), "min exceeds max")
}

func TestOption_PrimitiveTarget(t *testing.T) {
	var n int
	require.NoError(t, Apply(&n, NoError(func(p *int) { *p = 42 })))
	require.Equal(t, 42, n)
}
