package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatch_FormValues_OnlyChangedFields(t *testing.T) {
	p := Patch{FieldStartDate: "2024-02-02", FieldDueDate: "2024-02-08"}

	v := p.FormValues()

	assert.Equal(t, "2024-02-02", v.Get("issue[start_date]"))
	assert.Equal(t, "2024-02-08", v.Get("issue[due_date]"))
	assert.Len(t, v, 2)
}

func TestPatch_SetInt_ZeroReferenceClears(t *testing.T) {
	p := Patch{}
	p.SetInt(FieldAssignee, 0)
	p.SetInt(FieldParent, 12)
	p.SetInt(FieldDoneRatio, 0)

	assert.Equal(t, "", p[FieldAssignee])
	assert.Equal(t, "12", p[FieldParent])
	assert.Equal(t, "0", p[FieldDoneRatio])
}

func TestPatch_String_StableOrder(t *testing.T) {
	p := Patch{FieldParent: "3", FieldStartDate: "2024-01-01", FieldDoneRatio: "50"}
	assert.Equal(t, "start_date=2024-01-01 done_ratio=50 parent_issue_id=3", p.String())
}

func TestStrings_WithDefaults_KeepsOverrides(t *testing.T) {
	s := Strings{ButtonSave: "Speichern"}.WithDefaults()

	assert.Equal(t, "Speichern", s.ButtonSave)
	assert.Equal(t, "(none)", s.LabelNone)
	assert.Equal(t, "Change the parent of #2 to #7?", s.ConfirmParentText("#2", "#7"))
}
