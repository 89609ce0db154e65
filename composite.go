// FILE: lixenwraith/settings/composite.go
package settings

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CompositeReader aggregates readers as if they were one source.
// Lookups go from the first reader to the last, so a key held by an earlier reader
// shadows the same key in later ones.
type CompositeReader struct {
	name    string
	readers []Reader
	opts    options
}

// NewCompositeReader combines readers in priority order. Nil readers are dropped;
// at least one reader must remain.
func NewCompositeReader(readers []Reader, opts ...Option) (*CompositeReader, error) {
	kept := make([]Reader, 0, len(readers))
	names := make([]string, 0, len(readers))
	for _, r := range readers {
		if r == nil {
			continue
		}
		kept = append(kept, r)
		names = append(names, r.Name())
	}
	if len(kept) == 0 {
		return nil, nullArgument("readers")
	}

	o := newOptions(opts)
	name := o.name
	if name == "" {
		name = strings.Join(names, ",")
	}

	return &CompositeReader{
		name:    name,
		readers: kept,
		opts:    o,
	}, nil
}

// Combine merges two readers; a takes priority over b.
func Combine(a, b Reader, opts ...Option) (*CompositeReader, error) {
	return NewCompositeReader([]Reader{a, b}, opts...)
}

// Name implements Reader. It is the child names joined by commas.
func (c *CompositeReader) Name() string {
	return c.name
}

// Readers returns the children in priority order.
func (c *CompositeReader) Readers() []Reader {
	out := make([]Reader, len(c.readers))
	copy(out, c.readers)
	return out
}

// List implements Reader. The result is every child's list concatenated in
// priority order; keys held by several children appear several times.
func (c *CompositeReader) List() []KeyValue {
	var list []KeyValue
	for _, r := range c.readers {
		list = append(list, r.List()...)
	}
	return list
}

// Contains implements Reader.
func (c *CompositeReader) Contains(key string) bool {
	normalized, ok := c.normalize(key)
	if !ok {
		return false
	}
	for _, r := range c.readers {
		if r.Contains(normalized) {
			return true
		}
	}
	return false
}

// Lookup implements Reader. The first child containing the key answers.
func (c *CompositeReader) Lookup(key string) (*string, bool, error) {
	normalized, ok := c.normalize(key)
	if !ok {
		return nil, false, nullArgument("key")
	}
	for _, r := range c.readers {
		if r.Contains(normalized) {
			return r.Lookup(key)
		}
	}
	return nil, false, nil
}

// HandleMiss implements Reader.
//
// Every child gets the miss concurrently so that each caching layer can record the
// default. This is a best-effort broadcast: the children's results are discarded and
// their errors and panics are swallowed, since the value returned comes from the
// composite's own miss policy once all children are done.
func (c *CompositeReader) HandleMiss(key string, def any, formatted *string) (any, error) {
	if _, ok := c.normalize(key); !ok {
		return nil, nullArgument("key")
	}

	var g errgroup.Group
	for _, r := range c.readers {
		r := r
		g.Go(func() error {
			defer func() {
				if rec := recover(); rec != nil {
					c.opts.logger.Debug("miss handler panicked",
						zap.String("reader", r.Name()),
						zap.String("key", key),
						zap.Any("panic", rec))
				}
			}()
			if _, err := r.HandleMiss(key, def, formatted); err != nil {
				c.opts.logger.Debug("miss handler failed",
					zap.String("reader", r.Name()),
					zap.String("key", key),
					zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()

	return c.opts.onMiss(key, def, formatted)
}

// Registry implements Reader.
func (c *CompositeReader) Registry() *Registry {
	return c.opts.registry
}

func (c *CompositeReader) normalize(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	normalized := c.opts.normalizer.NormalizeKey(key)
	return normalized, normalized != ""
}

// String returns a short description for debugging.
func (c *CompositeReader) String() string {
	return fmt.Sprintf("CompositeReader(%s)", c.name)
}
