package model

import (
	"fmt"
	"strings"
)

// Row actions the table renderer knows how to draw.
const (
	ActionView   = "view"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// Issue is a non-fatal configuration problem found by Validate.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Normalize applies the documented defaults in place. It is idempotent.
func (m *ModuleConfig) Normalize() {
	if m == nil {
		return
	}
	m.Entity = strings.TrimSpace(m.Entity)
	if m.Singular == "" {
		m.Singular = HumanizeKey(m.Entity)
	}
	if m.Plural == "" {
		m.Plural = m.Singular
	}

	route := strings.TrimRight(strings.TrimSpace(m.Route), "/")
	if route != "" {
		if m.DetailURL == "" {
			m.DetailURL = route + "/{id}"
		}
		if m.EditURL == "" {
			m.EditURL = route + "/{id}/edit"
		}
		if m.DeleteURL == "" {
			m.DeleteURL = route + "/{id}/delete"
		}
		if m.Form.Action == "" {
			m.Form.Action = route
		}
	}
	if m.Form.Method == "" {
		m.Form.Method = "post"
	}

	for idx := range m.Columns {
		col := &m.Columns[idx]
		col.Key = strings.TrimSpace(col.Key)
		col.Type = col.Type.Normalized()
		if col.Label == "" && col.LabelKey == "" {
			col.Label = HumanizeKey(col.Key)
		}
		col.Align = strings.ToLower(strings.TrimSpace(col.Align))
	}

	actions := make([]string, 0, len(m.Actions))
	for _, action := range m.Actions {
		if trimmed := strings.ToLower(strings.TrimSpace(action)); trimmed != "" {
			actions = append(actions, trimmed)
		}
	}
	m.Actions = actions

	for idx := range m.Form.Fields {
		field := &m.Form.Fields[idx]
		field.Name = strings.TrimSpace(field.Name)
		field.Type = FieldType(strings.ToLower(strings.TrimSpace(string(field.Type))))
		if field.Type == "" {
			field.Type = FieldText
		}
	}

	for idx := range m.Detail.Sections {
		section := &m.Detail.Sections[idx]
		section.Type = SectionType(strings.ToLower(strings.TrimSpace(string(section.Type))))
		for rowIdx := range section.Rows {
			section.Rows[rowIdx].Format = section.Rows[rowIdx].Format.Normalized()
		}
	}
	for idx := range m.Detail.HeaderBadges {
		badge := &m.Detail.HeaderBadges[idx]
		badge.Type = BadgeType(strings.ToLower(strings.TrimSpace(string(badge.Type))))
		if badge.Type == "" {
			badge.Type = BadgePlain
		}
	}
}

// Validate reports configuration problems. Renderers tolerate every reported
// issue by falling back to documented defaults, so callers usually log them.
func (m ModuleConfig) Validate() []Issue {
	var issues []Issue
	add := func(path, format string, args ...any) {
		issues = append(issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(m.Entity) == "" {
		add("entity", "entity is required")
	}

	seen := make(map[string]struct{}, len(m.Columns))
	for idx, col := range m.Columns {
		path := fmt.Sprintf("columns[%d]", idx)
		if col.Key == "" {
			add(path, "column key is required")
			continue
		}
		path = "columns." + col.Key
		if _, dup := seen[col.Key]; dup {
			add(path, "duplicate column")
		}
		seen[col.Key] = struct{}{}
		colType := col.Type.Normalized()
		if colType != FormatCustom && !colType.Known() {
			add(path, "unknown column type %q, rendering as text", col.Type)
		}
		if colType == FormatCustom && strings.TrimSpace(col.Callback) == "" {
			add(path, "custom column without callback, rendering as text")
		}
	}

	for _, action := range m.Actions {
		switch strings.ToLower(strings.TrimSpace(action)) {
		case ActionView, ActionEdit, ActionDelete:
		default:
			add("actions", "unsupported action %q is ignored", action)
		}
	}

	for idx, field := range m.Form.Fields {
		path := fmt.Sprintf("form.fields[%d]", idx)
		if field.Name != "" {
			path = "form.fields." + field.Name
		}
		if field.Type != "" && !field.Type.Known() {
			add(path, "unknown field type %q, rendering as text", field.Type)
		}
		if !field.Type.Structural() && strings.TrimSpace(field.Name) == "" {
			add(path, "field name is required")
		}
		if (field.Type == FieldSelect || field.Type == FieldRadio) && len(field.Options) == 0 && field.OptionsCallback == "" {
			add(path, "%s field without options", field.Type)
		}
	}

	for idx, section := range m.Detail.Sections {
		path := fmt.Sprintf("detail.sections[%d]", idx)
		if !section.Type.Known() {
			add(path, "unknown section type %q is skipped", section.Type)
			continue
		}
		if section.Permission != "" && strings.Count(section.Permission, ":") > 1 {
			add(path, "permission %q must be action:module", section.Permission)
		}
		switch section.Type {
		case SectionRelatedList, SectionTimeline:
			if section.DataKey == "" {
				add(path, "%s requires data_key", section.Type)
			}
		case SectionTextBlock:
			if section.Field == "" {
				add(path, "text_block requires field")
			}
		case SectionSpecial:
			if section.Template == "" {
				add(path, "special requires template")
			}
		}
		for rowIdx, row := range section.Rows {
			rowPath := fmt.Sprintf("%s.rows[%d]", path, rowIdx)
			if row.Field == "" {
				add(rowPath, "row field is required")
			}
			if !row.Format.Normalized().Known() {
				add(rowPath, "unknown format %q, rendering as text", row.Format)
			}
		}
	}

	for idx, badge := range m.Detail.HeaderBadges {
		path := fmt.Sprintf("detail.header_badges[%d]", idx)
		if badge.Type != "" && !badge.Type.Known() {
			add(path, "unknown badge type %q, rendering as plain", badge.Type)
		}
		if badge.Field == "" {
			add(path, "badge field is required")
		}
	}

	return issues
}
