package vdom

import (
	"strconv"
	"strings"
)

// Attribute creates an attribute with an arbitrary key.
func Attribute(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// flag returns an attribute whose empty value (removal) encodes false.
func flag(key string, on bool) Attr {
	if on {
		return Attr{Key: key, Value: key}
	}
	return Attr{Key: key}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return Attribute("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return Attribute("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return Attribute("style", style) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return Attribute("data-"+key, value) }

// TitleAttr sets the title attribute.
func TitleAttr(title string) Attr { return Attribute("title", title) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return Attribute("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return Attribute("aria-label", label) }

// AriaHidden sets the aria-hidden attribute.
func AriaHidden(hidden bool) Attr { return Attribute("aria-hidden", strconv.FormatBool(hidden)) }

// Link and form attributes

// Href sets the href attribute.
func Href(url string) Attr { return Attribute("href", url) }

// Src sets the src attribute.
func Src(url string) Attr { return Attribute("src", url) }

// Type sets the type attribute.
func Type(t string) Attr { return Attribute("type", t) }

// Name sets the name attribute.
func Name(name string) Attr { return Attribute("name", name) }

// Value sets the value attribute.
func Value(v string) Attr { return Attribute("value", v) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return Attribute("placeholder", text) }

// Boolean attributes. A false value renders as the empty removal value.

// Disabled sets or clears the disabled attribute.
func Disabled(on bool) Attr { return flag("disabled", on) }

// Checked sets or clears the checked attribute.
func Checked(on bool) Attr { return flag("checked", on) }

// Hidden sets or clears the hidden attribute.
func Hidden(on bool) Attr { return flag("hidden", on) }
