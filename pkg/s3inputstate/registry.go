// pkg/s3inputstate/registry.go

package s3inputstate

import (
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/pathmanager"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_io"
)

// Registry hands out one shared InputState per command invocation.
// The first GetInstance call creates it; later calls carrying a payload
// update it in place. Instances obtained from the same registry are the
// same object, whatever resource name later calls pass.
type Registry struct {
	rc       *scaffold_io.RuntimeContext
	paths    *pathmanager.PathManager
	instance *InputState
}

func NewRegistry(rc *scaffold_io.RuntimeContext, paths *pathmanager.PathManager) *Registry {
	return &Registry{rc: rc, paths: paths}
}

// GetInstance returns the shared state, creating it on first use.
func (r *Registry) GetInstance(opts Options) (*InputState, error) {
	if r.instance == nil {
		inst, err := New(r.rc, r.paths, opts.ResourceName, opts.InputPayload)
		if err != nil {
			return nil, err
		}
		r.instance = inst
	}
	if opts.InputPayload != nil {
		if err := r.instance.UpdateInputPayload(opts.InputPayload); err != nil {
			return nil, err
		}
	}
	return r.instance, nil
}
