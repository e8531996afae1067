package driven

import "github.com/custodia-labs/geosearch/internal/core/domain"

// Presenter applies render instructions emitted by the control.
type Presenter interface {
	Apply(instr domain.RenderInstruction)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(instr domain.RenderInstruction)

// Apply calls f(instr).
func (f PresenterFunc) Apply(instr domain.RenderInstruction) { f(instr) }
