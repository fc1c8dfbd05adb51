package list

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stokpano/internal/core/id"
)

func TestNew_Defaults(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	l := New("", now)
	assert.Equal(t, "Untitled List", l.Name)
	assert.Equal(t, StatusDraft, l.Status)
	assert.Equal(t, PriorityNormal, l.Priority)
	assert.NotNil(t, l.Items)
	assert.Empty(t, l.Items)
	assert.Equal(t, now, l.CreatedAt)
	assert.Equal(t, now, l.UpdatedAt)
	assert.False(t, id.IsNil(l.ID))
}

func TestPatch_Apply(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	l := New("orig", now)

	name := "renamed"
	status := StatusApproved
	prio := PriorityUrgent
	fid := id.New()
	due := now.Add(72 * time.Hour)
	tags := []string{"a"}
	Patch{
		Name:     &name,
		Status:   &status,
		Priority: &prio,
		FolderID: &fid,
		DueDate:  &due,
		Tags:     &tags,
	}.Apply(l)

	assert.Equal(t, "renamed", l.Name)
	assert.Equal(t, StatusApproved, l.Status)
	assert.Equal(t, PriorityUrgent, l.Priority)
	require.NotNil(t, l.FolderID)
	assert.Equal(t, fid, *l.FolderID)
	require.NotNil(t, l.DueDate)
	assert.True(t, l.DueDate.Equal(due))
	assert.Equal(t, []string{"a"}, l.Tags)
}

func TestPatch_NilFieldsLeaveValues(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	l := New("keep", now)
	l.Status = StatusOrdered

	Patch{}.Apply(l)

	assert.Equal(t, "keep", l.Name)
	assert.Equal(t, StatusOrdered, l.Status)
}

func TestPatch_Sentinels(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	l := New("l", now)
	fid := id.New()
	l.FolderID = &fid
	due := now.Add(time.Hour)
	l.DueDate = &due

	unfile := id.Nil()
	var clear time.Time
	Patch{FolderID: &unfile, DueDate: &clear}.Apply(l)

	assert.Nil(t, l.FolderID)
	assert.Nil(t, l.DueDate)
}

func TestPatch_InvalidEnumsIgnored(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	l := New("l", now)

	bogusStatus := Status("bogus")
	bogusPrio := Priority("nope")
	Patch{Status: &bogusStatus, Priority: &bogusPrio}.Apply(l)

	assert.Equal(t, StatusDraft, l.Status)
	assert.Equal(t, PriorityNormal, l.Priority)
}

func TestNewItem_Defaults(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	it := NewItem(ItemInput{StockCode: "A1", SuggestedQuantity: 12}, now)
	assert.Equal(t, float64(12), it.Quantity)
	assert.False(t, it.IsModified)
	assert.Equal(t, ItemStatusPending, it.Status)
	assert.Equal(t, PriorityNormal, it.Priority)
	assert.Equal(t, now, it.AddedAt)
	assert.False(t, id.IsNil(it.ID))

	over := NewItem(ItemInput{StockCode: "A2", Quantity: 3, SuggestedQuantity: 12}, now)
	assert.Equal(t, float64(3), over.Quantity)
	assert.True(t, over.IsModified)
}

func TestClone_IsDeep(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	l := New("deep", now)
	fid := id.New()
	l.FolderID = &fid
	l.Tags = []string{"t"}
	price := decimal.NewFromInt(7)
	l.Items = []Item{{ID: id.New(), StockCode: "A", Quantity: 2, EstimatedPrice: &price}}

	c := l.Clone()
	c.Name = "other"
	*c.FolderID = id.New()
	c.Tags[0] = "changed"
	c.Items[0].Quantity = 99
	*c.Items[0].EstimatedPrice = decimal.NewFromInt(1)

	assert.Equal(t, "deep", l.Name)
	assert.Equal(t, fid, *l.FolderID)
	assert.Equal(t, "t", l.Tags[0])
	assert.Equal(t, float64(2), l.Items[0].Quantity)
	assert.True(t, l.Items[0].EstimatedPrice.Equal(decimal.NewFromInt(7)))
}

func TestTotalValue(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	l := New("v", now)
	p1 := decimal.NewFromFloat(2.5)
	l.Items = []Item{
		{Quantity: 4, EstimatedPrice: &p1},
		{Quantity: 100}, // no price, contributes nothing
	}

	assert.Equal(t, 2, l.TotalItems())
	assert.True(t, l.TotalValue().Equal(decimal.NewFromInt(10)))
}
