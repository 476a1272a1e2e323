package scene

import (
	"slices"

	"github.com/chazu/drafter/pkg/geom"
	"github.com/chazu/drafter/pkg/kernel"
	"github.com/chazu/drafter/pkg/rep"
)

// TextActor tracks text boxes and the single text edit in progress. The
// editing widget itself belongs to the host: the actor asks for it through
// the edit observers and receives the result through Commit.
type TextActor struct {
	mapper    kernel.Mapper
	texts     []*rep.TextRep
	underEdit *rep.TextRep
	editPos   geom.Vec2
	editing   bool

	created func(*rep.TextRep)
	edit    []func(pos geom.Vec2, initial string)
}

func NewTextActor(mapper kernel.Mapper, created func(*rep.TextRep)) *TextActor {
	return &TextActor{mapper: mapper, created: created}
}

// OnEdit registers fn to be asked to show an editor at pos, in view
// coordinates, filled with initial.
func (ta *TextActor) OnEdit(fn func(pos geom.Vec2, initial string)) {
	ta.edit = append(ta.edit, fn)
}

// ShowTextEdit opens an edit at pos. Unless an existing text is under
// edit, committing it creates a new text box there.
func (ta *TextActor) ShowTextEdit(pos geom.Vec2) {
	ta.editPos = pos
	ta.editing = true
	initial := ""
	if ta.underEdit != nil {
		initial = ta.underEdit.Text()
	}
	for _, fn := range ta.edit {
		fn(pos, initial)
	}
}

// EditText opens an edit on the first selected text box.
func (ta *TextActor) EditText() {
	t := ta.selected()
	if t == nil {
		return
	}
	ta.underEdit = t
	ta.ShowTextEdit(ta.mapper.MapFromScene(t.Model().Position()))
}

// Commit ends the edit in progress. It returns the text box created, or
// nil when an existing one was updated or no edit was open.
func (ta *TextActor) Commit(text string) *rep.TextRep {
	if !ta.editing {
		return nil
	}
	ta.editing = false
	if t := ta.underEdit; t != nil {
		ta.underEdit = nil
		t.SetText(text)
		return nil
	}
	t := NewText(ta.mapper.MapToScene(ta.editPos), text)
	ta.texts = append(ta.texts, t)
	if ta.created != nil {
		ta.created(t)
	}
	return t
}

// Cancel drops the edit in progress.
func (ta *TextActor) Cancel() {
	ta.editing = false
	ta.underEdit = nil
}

func (ta *TextActor) Editing() bool { return ta.editing }

// Track adds a text box built elsewhere.
func (ta *TextActor) Track(t *rep.TextRep) {
	if !slices.Contains(ta.texts, t) {
		ta.texts = append(ta.texts, t)
	}
}

// Forget removes t from the tracked text boxes.
func (ta *TextActor) Forget(t *rep.TextRep) {
	ta.texts = slices.DeleteFunc(ta.texts, func(x *rep.TextRep) bool { return x == t })
	if ta.underEdit == t {
		ta.Cancel()
	}
}

// DeleteSelected forgets the first selected text box.
func (ta *TextActor) DeleteSelected() {
	if t := ta.selected(); t != nil {
		ta.Forget(t)
	}
}

func (ta *TextActor) Texts() []*rep.TextRep {
	return slices.Clone(ta.texts)
}

func (ta *TextActor) selected() *rep.TextRep {
	i := slices.IndexFunc(ta.texts, func(t *rep.TextRep) bool { return t.Model().IsSelected() })
	if i < 0 {
		return nil
	}
	return ta.texts[i]
}
