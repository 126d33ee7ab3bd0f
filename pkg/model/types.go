package model

import "strings"

// ValueFormat is the closed set of value-display kinds shared by detail rows
// and table cells.
type ValueFormat string

const (
	FormatText     ValueFormat = "text"
	FormatDate     ValueFormat = "date"
	FormatDateTime ValueFormat = "datetime"
	FormatTime     ValueFormat = "time"
	FormatPhone    ValueFormat = "phone"
	FormatEmail    ValueFormat = "email"
	FormatURL      ValueFormat = "url"
	FormatBadge    ValueFormat = "badge"
	FormatBoolean  ValueFormat = "boolean"
	FormatNumber   ValueFormat = "number"
	FormatCurrency ValueFormat = "currency"
	FormatPercent  ValueFormat = "percent"
	FormatHTML     ValueFormat = "html"
	FormatImage    ValueFormat = "image"
	FormatCode     ValueFormat = "code"
	FormatColor    ValueFormat = "color"

	// FormatCustom is only valid for table columns and delegates to a named
	// cell callback.
	FormatCustom ValueFormat = "custom"
)

var valueFormats = []ValueFormat{
	FormatText, FormatDate, FormatDateTime, FormatTime, FormatPhone,
	FormatEmail, FormatURL, FormatBadge, FormatBoolean, FormatNumber,
	FormatCurrency, FormatPercent, FormatHTML, FormatImage, FormatCode,
	FormatColor,
}

// ValueFormats lists the built-in formats in canonical order.
func ValueFormats() []ValueFormat {
	return append([]ValueFormat(nil), valueFormats...)
}

// Known reports whether f is one of the built-in formats.
func (f ValueFormat) Known() bool {
	for _, candidate := range valueFormats {
		if candidate == f {
			return true
		}
	}
	return false
}

// Normalized lower-cases and trims the tag; an empty tag becomes text.
func (f ValueFormat) Normalized() ValueFormat {
	trimmed := ValueFormat(strings.ToLower(strings.TrimSpace(string(f))))
	if trimmed == "" {
		return FormatText
	}
	return trimmed
}

// SectionType identifies the body renderer of a detail section.
type SectionType string

const (
	SectionInfoRows    SectionType = "info_rows"
	SectionRelatedList SectionType = "related_list"
	SectionTextBlock   SectionType = "text_block"
	SectionMetadata    SectionType = "metadata"
	SectionStatGrid    SectionType = "stat_grid"
	SectionTimeline    SectionType = "timeline"
	SectionFeatureList SectionType = "feature_list"
	SectionSpecial     SectionType = "special"
)

var sectionTypes = []SectionType{
	SectionInfoRows, SectionRelatedList, SectionTextBlock, SectionMetadata,
	SectionStatGrid, SectionTimeline, SectionFeatureList, SectionSpecial,
}

// Known reports whether t is a built-in section type.
func (t SectionType) Known() bool {
	for _, candidate := range sectionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// BadgeType identifies how a header badge renders its field.
type BadgeType string

const (
	BadgeStatus   BadgeType = "status"
	BadgeIconText BadgeType = "icon_text"
	BadgeCode     BadgeType = "code"
	BadgePlain    BadgeType = "plain"
	BadgeCount    BadgeType = "count"
	BadgeRole     BadgeType = "role"
	BadgeFlag     BadgeType = "flag"
	BadgeImage    BadgeType = "image"
	BadgeColor    BadgeType = "color"
)

var badgeTypes = []BadgeType{
	BadgeStatus, BadgeIconText, BadgeCode, BadgePlain, BadgeCount,
	BadgeRole, BadgeFlag, BadgeImage, BadgeColor,
}

// Known reports whether t is a built-in badge type.
func (t BadgeType) Known() bool {
	for _, candidate := range badgeTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// FieldType identifies a form field control.
type FieldType string

const (
	FieldText          FieldType = "text"
	FieldEmail         FieldType = "email"
	FieldTel           FieldType = "tel"
	FieldURL           FieldType = "url"
	FieldNumber        FieldType = "number"
	FieldPassword      FieldType = "password"
	FieldTextarea      FieldType = "textarea"
	FieldSelect        FieldType = "select"
	FieldCheckbox      FieldType = "checkbox"
	FieldRadio         FieldType = "radio"
	FieldDate          FieldType = "date"
	FieldDateTimeLocal FieldType = "datetime-local"
	FieldTime          FieldType = "time"
	FieldColor         FieldType = "color"
	FieldFile          FieldType = "file"
	FieldHidden        FieldType = "hidden"
	FieldSection       FieldType = "section"
	FieldDivider       FieldType = "divider"
)

var fieldTypes = []FieldType{
	FieldText, FieldEmail, FieldTel, FieldURL, FieldNumber, FieldPassword,
	FieldTextarea, FieldSelect, FieldCheckbox, FieldRadio, FieldDate,
	FieldDateTimeLocal, FieldTime, FieldColor, FieldFile, FieldHidden,
	FieldSection, FieldDivider,
}

// Known reports whether t is a built-in field type.
func (t FieldType) Known() bool {
	for _, candidate := range fieldTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// Structural reports whether the entry is layout only and carries no value.
func (t FieldType) Structural() bool {
	return t == FieldSection || t == FieldDivider
}
