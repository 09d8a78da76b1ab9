package persist

import (
	"context"
	"errors"
	"testing"

	"github.com/artpar/marquee/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type code string

var codes = []code{"en", "ar", "fr", "zh"}

type recorder struct {
	seen []code
}

func (r *recorder) observe(c code) { r.seen = append(r.seen, c) }

func newTestPreference(store kv.Store) (*Preference[code], *recorder) {
	rec := &recorder{}
	p := NewPreference(store, "lang", codes, "en", WithObserver(rec.observe))
	return p, rec
}

func TestPreference_DefaultBeforeLoad(t *testing.T) {
	p, rec := newTestPreference(kv.NewMemory())
	assert.Equal(t, code("en"), p.Value())
	assert.Empty(t, rec.seen)
}

func TestPreference_LoadFallback(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(*kv.Memory)
		want  code
	}{
		{"absent", func(*kv.Memory) {}, "en"},
		{"unknown code", func(m *kv.Memory) { m.Set(ctx, "lang", "de") }, "en"},
		{"empty", func(m *kv.Memory) { m.Set(ctx, "lang", "") }, "en"},
		{"read error", func(m *kv.Memory) { m.GetErr = errors.New("denied") }, "en"},
		{"stored code", func(m *kv.Memory) { m.Set(ctx, "lang", "ar") }, "ar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := kv.NewMemory()
			tt.setup(store)

			p, rec := newTestPreference(store)
			got := p.Load(ctx)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, p.Value())
			assert.Equal(t, []code{tt.want}, rec.seen, "observer fires once per load")
		})
	}
}

func TestPreference_Set(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()
	p, rec := newTestPreference(store)

	assert.True(t, p.Set(ctx, "fr"))
	assert.Equal(t, code("fr"), p.Value())

	raw, ok, err := store.Get(ctx, "lang")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "fr", raw)
	assert.Equal(t, []code{"fr"}, rec.seen)

	// Converges after reload
	next, _ := newTestPreference(store)
	assert.Equal(t, code("fr"), next.Load(ctx))
}

func TestPreference_SetRejectsUnknown(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()
	p, rec := newTestPreference(store)
	p.Set(ctx, "zh")

	assert.False(t, p.Set(ctx, "klingon"))
	assert.Equal(t, code("zh"), p.Value())
	assert.Equal(t, []code{"zh"}, rec.seen)
	assert.Equal(t, 1, store.Writes())
}

func TestPreference_SetWriteFailure(t *testing.T) {
	store := kv.NewMemory()
	store.SetErr = errors.New("quota exceeded")
	ctx := context.Background()
	p, rec := newTestPreference(store)

	assert.True(t, p.Set(ctx, "ar"))
	assert.Equal(t, code("ar"), p.Value())
	assert.Equal(t, []code{"ar"}, rec.seen, "projection follows memory even when persistence fails")
}

func TestPreference_Allowed(t *testing.T) {
	p, _ := newTestPreference(kv.NewMemory())
	assert.Equal(t, codes, p.Allowed())
	assert.True(t, p.Valid("zh"))
	assert.False(t, p.Valid("ZH"))
}
