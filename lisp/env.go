package lisp

import (
	"fmt"
	"sort"
)

// Scope selects how a function body resolves names that are not parameters.
type Scope uint

// Possible Scope values
const (
	// ScopeDynamic evaluates a function body in a copy of the caller's
	// environment.  Bindings made by the body are discarded on return.
	ScopeDynamic Scope = iota
	// ScopeLexical evaluates a function body in a child of the environment
	// in which the lambda was evaluated.
	ScopeLexical
)

func (s Scope) String() string {
	if s == ScopeLexical {
		return "lexical"
	}
	return "dynamic"
}

// LEnv is a lisp environment.
type LEnv struct {
	Scope   map[string]*LVal
	Parent  *LEnv
	Runtime *Runtime
}

// NewEnv initializes and returns a new root LEnv with a default Runtime that
// has been modified by config.
func NewEnv(config ...Config) (*LEnv, error) {
	env := &LEnv{
		Scope:   make(map[string]*LVal),
		Runtime: StandardRuntime(),
	}
	for _, fn := range config {
		if err := fn(env); err != nil {
			return nil, err
		}
	}
	return env, nil
}

// newChild returns an empty environment whose unresolved names are looked up
// in parent.
func newChild(parent *LEnv) *LEnv {
	return &LEnv{
		Scope:   make(map[string]*LVal),
		Parent:  parent,
		Runtime: parent.Runtime,
	}
}

// Copy returns a new LEnv with a copy of env.Scope but a shared parent and
// runtime (not quite a deep copy).
func (env *LEnv) Copy() *LEnv {
	if env == nil {
		return nil
	}
	cp := &LEnv{}
	*cp = *env
	cp.Scope = make(map[string]*LVal, len(env.Scope))
	for k, v := range env.Scope {
		cp.Scope[k] = v
	}
	return cp
}

// Get returns the value bound to k in env or one of its ancestors.
func (env *LEnv) Get(k string) (*LVal, bool) {
	for ; env != nil; env = env.Parent {
		v, ok := env.Scope[k]
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Put binds k to v in env, replacing any existing binding.
func (env *LEnv) Put(k string, v *LVal) {
	if v == nil {
		panic("nil value")
	}
	env.Scope[k] = v
}

// Names returns the names bound directly in env in sorted order.
func (env *LEnv) Names() []string {
	keys := make([]string, 0, len(env.Scope))
	for k := range env.Scope {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (env *LEnv) String() string {
	return fmt.Sprintf("env%v", env.Names())
}
