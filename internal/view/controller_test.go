package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tasktree/internal/item"
	"tasktree/internal/view"
)

func activeTagConfig() item.TagConfig {
	return item.TagConfig{Tags: []string{"#task", "#note"}, Active: "#task"}
}

func wildcardTagConfig() item.TagConfig {
	return item.TagConfig{Tags: []string{"#task", "#note"}}
}

func TestControllerDefaults(t *testing.T) {
	t.Parallel()

	ctrl := view.NewController(activeTagConfig())
	sel := ctrl.Selection()

	assert.Equal(t, view.TemporalAll, sel.Temporal)
	assert.Equal(t, view.PriorityAny, sel.Priority)
	assert.Equal(t, view.CompletionNotDone, sel.Completion)
	assert.Empty(t, sel.Search)
}

func TestControllerClearsSearchOnOtherFilters(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name   string
		mutate func(*view.Controller)
	}{
		{"temporal", func(c *view.Controller) { c.SetTemporal(view.DueSoon) }},
		{"priority", func(c *view.Controller) { c.SetPriority(view.PriorityP2) }},
		{"completion", func(c *view.Controller) { c.SetCompletion(view.CompletionDone) }},
		{"clear", func(c *view.Controller) { c.ClearFilters() }},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := view.NewController(activeTagConfig())
			ctrl.SetSearch("login")
			assert.Equal(t, "login", ctrl.Selection().Search)

			tt.mutate(ctrl)
			assert.Empty(t, ctrl.Selection().Search, "search text should be cleared")
		})
	}
}

func TestControllerSearchKeepsOtherFilters(t *testing.T) {
	t.Parallel()

	ctrl := view.NewController(activeTagConfig())
	ctrl.SetTemporal(view.DueSoon)
	ctrl.SetSearch("login")

	sel := ctrl.Selection()
	assert.Equal(t, view.DueSoon, sel.Temporal)
	assert.Equal(t, "login", sel.Search)
}

func TestControllerClearFilters(t *testing.T) {
	t.Parallel()

	ctrl := view.NewController(activeTagConfig())
	ctrl.SetTemporal(view.Overdue)
	ctrl.SetPriority(view.PriorityP3)
	ctrl.SetCompletion(view.CompletionAny)
	ctrl.SetSearch("x")

	ctrl.ClearFilters()

	assert.Equal(t, view.Selection{Completion: view.CompletionNotDone}, ctrl.Selection())
}

func TestControllerTitle(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name  string
		tags  item.TagConfig
		setup func(*view.Controller)
		want  string
	}{
		{
			name:  "defaults with active tag",
			tags:  activeTagConfig(),
			setup: func(*view.Controller) {},
			want:  "TASK",
		},
		{
			name:  "defaults in wildcard mode",
			tags:  wildcardTagConfig(),
			setup: func(*view.Controller) {},
			want:  "",
		},
		{
			name: "all parts in fixed order",
			tags: activeTagConfig(),
			setup: func(c *view.Controller) {
				c.SetCompletion(view.CompletionDone)
				c.SetTemporal(view.DueSoon)
				c.SetPriority(view.PriorityP2)
				c.SetSearch("login")
			},
			want: `TASK · P2 · DUE SOON · DONE · "login"`,
		},
		{
			name: "any-state completion is spelled out",
			tags: wildcardTagConfig(),
			setup: func(c *view.Controller) {
				c.SetCompletion(view.CompletionAny)
			},
			want: "DONE + NOT DONE",
		},
		{
			name: "temporal only",
			tags: activeTagConfig(),
			setup: func(c *view.Controller) {
				c.SetTemporal(view.Overdue)
			},
			want: "TASK · OVERDUE",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := view.NewController(tt.tags)
			tt.setup(ctrl)

			assert.Equal(t, tt.want, ctrl.Title())
		})
	}
}

func TestControllerNotifiesOnEveryChange(t *testing.T) {
	t.Parallel()

	ctrl := view.NewController(activeTagConfig())

	notified := 0

	ctrl.OnChange(func() { notified++ })

	ctrl.SetTemporal(view.DueSoon)
	ctrl.SetPriority(view.PriorityP1)
	ctrl.SetCompletion(view.CompletionAny)
	ctrl.SetSearch("x")
	ctrl.ClearFilters()

	assert.Equal(t, 5, notified)
}
