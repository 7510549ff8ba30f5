// Package batch sequences the filler over selected pod instances and
// reports progress over the message channel.
package batch

import (
	"fmt"

	"github.com/atlanticwaters/podfill/models"
	"github.com/atlanticwaters/podfill/pkg/filler"
	"github.com/atlanticwaters/podfill/pkg/locator"
)

// Emitter delivers messages to the presentation layer. Every populate
// entry point emits exactly one terminal success or error message.
type Emitter interface {
	Emit(models.Message)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(models.Message)

func (f EmitterFunc) Emit(msg models.Message) { f(msg) }

const noTargetsError = "no product pod instances selected"

// Orchestrator resolves selections to targets and runs fills strictly
// sequentially: instance i+1 never starts before instance i settles.
type Orchestrator struct {
	Filler         *filler.Filler
	Emitter        Emitter
	ComponentLabel string
}

func NewOrchestrator(f *filler.Filler, emitter Emitter, componentLabel string) *Orchestrator {
	return &Orchestrator{Filler: f, Emitter: emitter, ComponentLabel: componentLabel}
}

// SelectionSnapshot emits the current selection state: how many pod
// instances the selection resolves to. Sent on load and on every
// selection change.
func (o *Orchestrator) SelectionSnapshot(selection []models.SceneNode) models.Message {
	pods := locator.CollectTargets(selection, o.ComponentLabel)
	msg := models.SelectionUpdate(len(pods), len(pods) > 0)
	o.Emitter.Emit(msg)
	return msg
}

// PopulateSingle fills exactly the first pod the selection resolves to.
func (o *Orchestrator) PopulateSingle(selection []models.SceneNode, fields models.PodFields) {
	pods := locator.CollectTargets(selection, o.ComponentLabel)
	if len(pods) == 0 {
		o.Emitter.Emit(models.ErrorMessage(noTargetsError))
		return
	}

	o.Emitter.Emit(models.ProgressMessage(1, 1))
	if err := o.Filler.Fill(pods[0], fields); err != nil {
		o.Emitter.Emit(models.ErrorMessage(err.Error()))
		return
	}
	o.Emitter.Emit(models.SuccessMessage(1))
}

// PopulateBatch pairs pods with records in order and fills
// min(len(pods), len(items)) of them. The first fill failure is reported
// with its 1-based index and stops the batch; later pairs are never
// attempted and there is no partial-success summary.
func (o *Orchestrator) PopulateBatch(selection []models.SceneNode, items []models.PodFields) {
	pods := locator.CollectTargets(selection, o.ComponentLabel)
	if len(pods) == 0 {
		o.Emitter.Emit(models.ErrorMessage(noTargetsError))
		return
	}

	count := len(pods)
	if len(items) < count {
		count = len(items)
	}

	for i := 0; i < count; i++ {
		o.Emitter.Emit(models.ProgressMessage(i+1, count))
		if err := o.Filler.Fill(pods[i], items[i]); err != nil {
			o.Emitter.Emit(models.ErrorMessage(fmt.Sprintf("pod %d: %s", i+1, err)))
			return
		}
	}
	o.Emitter.Emit(models.SuccessMessage(count))
}
