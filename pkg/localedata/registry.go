package localedata

import (
	_ "embed"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/intl/pkg/locale"
	"github.com/dmitrymomot/intl/pkg/status"
)

//go:embed predefined.yaml
var predefined []byte

const root = "root"

// Option configures a Registry during construction.
type Option func(*Registry) error

// Registry holds locale data keyed by canonical ICU locale ID.
// It is safe for concurrent use.
type Registry struct {
	data map[string]Data
	mu   sync.RWMutex
}

// New creates a registry from the predefined data and applies opts in order.
func New(opts ...Option) (*Registry, error) {
	r := &Registry{data: make(map[string]Data)}
	if err := r.load("predefined.yaml", predefined, yaml.Unmarshal); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// WithData sets the data of one locale, merged over what is already there.
func WithData(id string, d Data) Option {
	return func(r *Registry) error {
		return r.Put(id, d)
	}
}

// Put merges d over the data stored for id.
func (r *Registry) Put(id string, d Data) error {
	key, err := key(id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.data[key]; ok {
		d = d.merge(prev)
	}
	r.data[key] = d
	return nil
}

func key(id string) (string, error) {
	if id == "" || strings.EqualFold(id, root) {
		return root, nil
	}
	canonical, err := locale.Canonicalize(id)
	if err != nil {
		return "", err
	}
	base, _, _ := strings.Cut(canonical, "@")
	if base == "" {
		return root, nil
	}
	return base, nil
}

// Lookup returns the data for id merged along its fallback chain.
// The empty ID is the default locale.
func (r *Registry) Lookup(id string) (Data, error) {
	if id == "" {
		id = locale.Default()
	}
	k, err := key(id)
	if err != nil {
		return Data{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	chain := []string{}
	for cur := k; cur != root; {
		if _, ok := r.data[cur]; ok {
			chain = append(chain, cur)
		}
		i := strings.LastIndexByte(cur, '_')
		if i <= 0 {
			break
		}
		cur = cur[:i]
	}

	out := r.data[root]
	out = out.merge(Data{})
	for _, c := range slices.Backward(chain) {
		out = r.data[c].merge(out)
	}
	return out, nil
}

// Has reports whether data is stored for exactly id.
func (r *Registry) Has(id string) bool {
	k, err := key(id)
	if err != nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.data[k]
	return ok
}

// Locales returns the IDs with stored data, root excluded, sorted.
func (r *Registry) Locales() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := slices.Sorted(maps.Keys(r.data))
	return slices.DeleteFunc(ids, func(id string) bool { return id == root })
}

func (r *Registry) load(name string, raw []byte, unmarshal func([]byte, any) error) error {
	var byLocale map[string]Data
	if err := unmarshal(raw, &byLocale); err != nil {
		return status.New("localedata.load", status.InvalidFormat, fmt.Errorf("%w: parsing %q: %w", ErrInvalidFile, name, err))
	}
	for _, id := range slices.Sorted(maps.Keys(byLocale)) {
		if err := r.Put(id, byLocale[id]); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidFile, name, err)
		}
	}
	return nil
}

var defaultRegistry atomic.Pointer[Registry]

// Default returns the process registry, creating it from the predefined data
// on first use.
func Default() *Registry {
	if r := defaultRegistry.Load(); r != nil {
		return r
	}
	r, err := New()
	if err != nil {
		panic(fmt.Sprintf("localedata: predefined data is invalid: %v", err))
	}
	defaultRegistry.CompareAndSwap(nil, r)
	return defaultRegistry.Load()
}

// SetDefault installs r as the process registry. Nil restores the predefined one.
func SetDefault(r *Registry) {
	defaultRegistry.Store(r)
}
