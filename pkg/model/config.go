package model

// ModuleConfig is the declarative contract for one entity.
type ModuleConfig struct {
	Entity   string `json:"entity" yaml:"entity"`
	Singular string `json:"singular,omitempty" yaml:"singular,omitempty"`
	Plural   string `json:"plural,omitempty" yaml:"plural,omitempty"`
	Route    string `json:"route,omitempty" yaml:"route,omitempty"`

	// Capabilities maps an action (view, edit, delete, ...) to the permission
	// string the caller's gate must grant.
	Capabilities map[string]string `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`

	Columns Columns  `json:"columns,omitempty" yaml:"columns,omitempty"`
	Actions []string `json:"actions,omitempty" yaml:"actions,omitempty"`

	DetailURL string `json:"detail_url,omitempty" yaml:"detail_url,omitempty"`
	EditURL   string `json:"edit_url,omitempty" yaml:"edit_url,omitempty"`
	DeleteURL string `json:"delete_url,omitempty" yaml:"delete_url,omitempty"`

	EmptyIcon string `json:"empty_icon,omitempty" yaml:"empty_icon,omitempty"`
	EmptyText string `json:"empty_text,omitempty" yaml:"empty_text,omitempty"`

	Form   FormConfig   `json:"form" yaml:"form"`
	Detail DetailConfig `json:"detail" yaml:"detail"`
}

// MapEntry describes how one raw value is presented by badges and badge cells.
type MapEntry struct {
	Icon     string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	LabelKey string `json:"label_key,omitempty" yaml:"label_key,omitempty"`
	Color    string `json:"color,omitempty" yaml:"color,omitempty"`
}

// FormatParams groups the format-specific parameters shared by rows and
// columns.
type FormatParams struct {
	Map              map[string]MapEntry `json:"map,omitempty" yaml:"map,omitempty"`
	Currency         string              `json:"currency,omitempty" yaml:"currency,omitempty"`
	CurrencyPosition string              `json:"currency_position,omitempty" yaml:"currency_position,omitempty"`
	Decimals         *int                `json:"decimals,omitempty" yaml:"decimals,omitempty"`
	IsDecimal        *bool               `json:"is_decimal,omitempty" yaml:"is_decimal,omitempty"`
	LinkText         string              `json:"link_text,omitempty" yaml:"link_text,omitempty"`
	DateFormat       string              `json:"date_format,omitempty" yaml:"date_format,omitempty"`
}

// ColumnConfig describes one list-table column.
type ColumnConfig struct {
	Key      string      `json:"key,omitempty" yaml:"key,omitempty"`
	Label    string      `json:"label,omitempty" yaml:"label,omitempty"`
	LabelKey string      `json:"label_key,omitempty" yaml:"label_key,omitempty"`
	Type     ValueFormat `json:"type,omitempty" yaml:"type,omitempty"`
	Sortable bool        `json:"sortable,omitempty" yaml:"sortable,omitempty"`
	Width    string      `json:"width,omitempty" yaml:"width,omitempty"`
	Align    string      `json:"align,omitempty" yaml:"align,omitempty"`
	Class    string      `json:"class,omitempty" yaml:"class,omitempty"`
	Callback string      `json:"callback,omitempty" yaml:"callback,omitempty"`

	FormatParams `json:",inline" yaml:",inline"`
}

// Row adapts the column into a RowConfig so cells share the value formatter.
func (c ColumnConfig) Row() RowConfig {
	return RowConfig{
		Field:        c.Key,
		Label:        c.Label,
		LabelKey:     c.LabelKey,
		Format:       c.Type,
		FormatParams: c.FormatParams,
	}
}

// RowConfig is one label/value line of a detail panel.
type RowConfig struct {
	Field     string      `json:"field" yaml:"field"`
	Label     string      `json:"label,omitempty" yaml:"label,omitempty"`
	LabelKey  string      `json:"label_key,omitempty" yaml:"label_key,omitempty"`
	Format    ValueFormat `json:"format,omitempty" yaml:"format,omitempty"`
	Condition string      `json:"condition,omitempty" yaml:"condition,omitempty"`
	ShowEmpty bool        `json:"show_empty,omitempty" yaml:"show_empty,omitempty"`
	EmptyText string      `json:"empty_text,omitempty" yaml:"empty_text,omitempty"`

	Bold      bool `json:"bold,omitempty" yaml:"bold,omitempty"`
	Stacked   bool `json:"stacked,omitempty" yaml:"stacked,omitempty"`
	Highlight bool `json:"highlight,omitempty" yaml:"highlight,omitempty"`
	Muted     bool `json:"muted,omitempty" yaml:"muted,omitempty"`

	SuffixField string `json:"suffix_field,omitempty" yaml:"suffix_field,omitempty"`

	FormatParams `json:",inline" yaml:",inline"`
}

// StatConfig is one card of a stat_grid section.
type StatConfig struct {
	Field    string      `json:"field" yaml:"field"`
	Label    string      `json:"label,omitempty" yaml:"label,omitempty"`
	LabelKey string      `json:"label_key,omitempty" yaml:"label_key,omitempty"`
	Color    string      `json:"color,omitempty" yaml:"color,omitempty"`
	Icon     string      `json:"icon,omitempty" yaml:"icon,omitempty"`
	Format   ValueFormat `json:"format,omitempty" yaml:"format,omitempty"`
}

// FeatureConfig is one boolean flag of a feature_list section.
type FeatureConfig struct {
	Field    string `json:"field" yaml:"field"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	LabelKey string `json:"label_key,omitempty" yaml:"label_key,omitempty"`
}

// SectionConfig is one block of a detail sidebar.
type SectionConfig struct {
	Type       SectionType `json:"type" yaml:"type"`
	Title      string      `json:"title,omitempty" yaml:"title,omitempty"`
	TitleKey   string      `json:"title_key,omitempty" yaml:"title_key,omitempty"`
	Icon       string      `json:"icon,omitempty" yaml:"icon,omitempty"`
	Condition  string      `json:"condition,omitempty" yaml:"condition,omitempty"`
	Permission string      `json:"permission,omitempty" yaml:"permission,omitempty"`
	Compact    bool        `json:"compact,omitempty" yaml:"compact,omitempty"`
	NoHeader   bool        `json:"no_header,omitempty" yaml:"no_header,omitempty"`

	// info_rows
	Rows []RowConfig `json:"rows,omitempty" yaml:"rows,omitempty"`

	// related_list and timeline
	DataKey          string            `json:"data_key,omitempty" yaml:"data_key,omitempty"`
	MaxItems         int               `json:"max_items,omitempty" yaml:"max_items,omitempty"`
	ShowAllURL       string            `json:"show_all_url,omitempty" yaml:"show_all_url,omitempty"`
	Link             string            `json:"link,omitempty" yaml:"link,omitempty"`
	TitleField       string            `json:"title_field,omitempty" yaml:"title_field,omitempty"`
	SubtitleField    string            `json:"subtitle_field,omitempty" yaml:"subtitle_field,omitempty"`
	IconField        string            `json:"icon_field,omitempty" yaml:"icon_field,omitempty"`
	IconMap          map[string]string `json:"icon_map,omitempty" yaml:"icon_map,omitempty"`
	StatusField      string            `json:"status_field,omitempty" yaml:"status_field,omitempty"`
	DateField        string            `json:"date_field,omitempty" yaml:"date_field,omitempty"`
	DescriptionField string            `json:"description_field,omitempty" yaml:"description_field,omitempty"`

	// text_block
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
	HTML  bool   `json:"html,omitempty" yaml:"html,omitempty"`

	EmptyText string `json:"empty_text,omitempty" yaml:"empty_text,omitempty"`
	EmptyIcon string `json:"empty_icon,omitempty" yaml:"empty_icon,omitempty"`

	Stats    []StatConfig    `json:"stats,omitempty" yaml:"stats,omitempty"`
	Features []FeatureConfig `json:"features,omitempty" yaml:"features,omitempty"`

	// special
	Template string `json:"template,omitempty" yaml:"template,omitempty"`
}

// BadgeConfig describes one header badge.
type BadgeConfig struct {
	Type       BadgeType           `json:"type" yaml:"type"`
	Field      string              `json:"field" yaml:"field"`
	Map        map[string]MapEntry `json:"map,omitempty" yaml:"map,omitempty"`
	Icon       string              `json:"icon,omitempty" yaml:"icon,omitempty"`
	Label      string              `json:"label,omitempty" yaml:"label,omitempty"`
	LabelKey   string              `json:"label_key,omitempty" yaml:"label_key,omitempty"`
	Color      string              `json:"color,omitempty" yaml:"color,omitempty"`
	Condition  string              `json:"condition,omitempty" yaml:"condition,omitempty"`
	Permission string              `json:"permission,omitempty" yaml:"permission,omitempty"`

	// Plural labels for count badges (1 / 2-4 / other).
	Singular string `json:"singular,omitempty" yaml:"singular,omitempty"`
	Few      string `json:"few,omitempty" yaml:"few,omitempty"`
	Many     string `json:"many,omitempty" yaml:"many,omitempty"`
}

// DetailConfig configures the detail sidebar.
type DetailConfig struct {
	TitleField    string          `json:"title_field,omitempty" yaml:"title_field,omitempty"`
	SubtitleField string          `json:"subtitle_field,omitempty" yaml:"subtitle_field,omitempty"`
	Icon          string          `json:"icon,omitempty" yaml:"icon,omitempty"`
	HeaderBadges  []BadgeConfig   `json:"header_badges,omitempty" yaml:"header_badges,omitempty"`
	Sections      []SectionConfig `json:"sections,omitempty" yaml:"sections,omitempty"`
}

// FormConfig configures the create/edit form.
type FormConfig struct {
	Action      string     `json:"action,omitempty" yaml:"action,omitempty"`
	Method      string     `json:"method,omitempty" yaml:"method,omitempty"`
	SubmitLabel string     `json:"submit_label,omitempty" yaml:"submit_label,omitempty"`
	Fields      FormFields `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Option is one choice of a select or radio field.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// FormFieldConfig describes one form entry. Section and divider entries are
// structural and never produce an input.
type FormFieldConfig struct {
	Name            string    `json:"name,omitempty" yaml:"name,omitempty"`
	Type            FieldType `json:"type,omitempty" yaml:"type,omitempty"`
	Label           string    `json:"label,omitempty" yaml:"label,omitempty"`
	LabelKey        string    `json:"label_key,omitempty" yaml:"label_key,omitempty"`
	Required        bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Default         any       `json:"default,omitempty" yaml:"default,omitempty"`
	Options         Options   `json:"options,omitempty" yaml:"options,omitempty"`
	OptionsCallback string    `json:"options_callback,omitempty" yaml:"options_callback,omitempty"`
	Placeholder     string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Help            string    `json:"help,omitempty" yaml:"help,omitempty"`
	ReadonlyOnEdit  bool      `json:"readonly_on_edit,omitempty" yaml:"readonly_on_edit,omitempty"`
	Min             any       `json:"min,omitempty" yaml:"min,omitempty"`
	Max             any       `json:"max,omitempty" yaml:"max,omitempty"`
	Step            any       `json:"step,omitempty" yaml:"step,omitempty"`
	Rows            int       `json:"rows,omitempty" yaml:"rows,omitempty"`
	Accept          string    `json:"accept,omitempty" yaml:"accept,omitempty"`
	Multiple        bool      `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Pattern         string    `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Class           string    `json:"class,omitempty" yaml:"class,omitempty"`
}
