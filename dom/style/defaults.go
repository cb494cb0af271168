package style

// Values "default" have the following semantics:
// Treat this as an inherent UA default, which should not be instantiated in memory,
// but rather will be treated implicitely by rendering code.
// See issue https://github.com/npillmayer/tyse/issues/8
var nonInherited = map[string]string{
	"position":            "static",
	"background-color":    "default",
	"border-top-color":    "default",
	"border-left-color":   "default",
	"border-right-color":  "default",
	"border-bottom-color": "default",
	"decorator":           "none",
	"float":               "none",
}

var inherited = map[string]string{
	"color":       "default",
	"font-effect": "none",
	"direction":   "ltr",
	"white-space": "normal",
	"visibility":  "visible",
}

var isDimension = map[string]string{
	"width":                      "auto",
	"height":                     "auto",
	"min-width":                  "none",
	"min-height":                 "none",
	"max-width":                  "none",
	"max-height":                 "none",
	"top":                        "0",
	"right":                      "0",
	"bottom":                     "0",
	"left":                       "0",
	"margin-top":                 "0",
	"margin-left":                "0",
	"margin-right":               "0",
	"margin-bottom":              "0",
	"padding-top":                "0",
	"padding-left":               "0",
	"padding-right":              "0",
	"padding-bottom":             "0",
	"border-top-width":           "medium",
	"border-left-width":          "medium",
	"border-right-width":         "medium",
	"border-bottom-width":        "medium",
	"border-top-left-radius":     "0",
	"border-top-right-radius":    "0",
	"border-bottom-left-radius":  "0",
	"border-bottom-right-radius": "0",
}

// UserAgentDefault returns the user-agent default property for a given key,
// for an element with the given tag name. Unknown keys return NullStyle.
func UserAgentDefault(tag string, key string) Value {
	if key == "display" {
		return DisplayForTag(tag)
	}
	if dim, ok := isDimension[key]; ok {
		return Value(dim)
	}
	if v, ok := nonInherited[key]; ok {
		return Value(v)
	}
	if v, ok := inherited[key]; ok {
		return Value(v)
	}
	return NullStyle
}

// DisplayForTag returns the default `display` CSS property for an HTML element.
func DisplayForTag(tag string) Value {
	switch tag {
	case "":
		return "none"
	case "head", "style", "script", "title", "meta", "link":
		return "none"
	case "p":
		return "block"
	case "html", "aside", "body", "div", "h1", "h2", "h3",
		"h4", "h5", "h6", "ol", "section", "ul", "li", "header", "footer":
		return "block"
	case "i", "b", "em", "a", "span", "strong", "img":
		return "inline"
	}
	tracer().Debugf("unknown HTML element %s will be set to display: inline", tag)
	return "inline"
}
