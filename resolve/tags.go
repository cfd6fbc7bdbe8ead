package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tymlgo/tyml/tree"
	"github.com/tymlgo/tyml/tymlerr"
)

// YamlTag canonicalises a recognised tag token to one of the names in
// spec.md §6.2.
type YamlTag string

const (
	TagNone      YamlTag = ""
	TagMap       YamlTag = "TAG_MAP"
	TagOMap      YamlTag = "TAG_OMAP"
	TagPairs     YamlTag = "TAG_PAIRS"
	TagSet       YamlTag = "TAG_SET"
	TagSeq       YamlTag = "TAG_SEQ"
	TagBinary    YamlTag = "TAG_BINARY"
	TagBool      YamlTag = "TAG_BOOL"
	TagFloat     YamlTag = "TAG_FLOAT"
	TagInt       YamlTag = "TAG_INT"
	TagMerge     YamlTag = "TAG_MERGE"
	TagNull      YamlTag = "TAG_NULL"
	TagStr       YamlTag = "TAG_STR"
	TagTimestamp YamlTag = "TAG_TIMESTAMP"
	TagValue     YamlTag = "TAG_VALUE"
)

var tagTable = map[string]YamlTag{
	"!!map":                      TagMap,
	"tag:yaml.org,2002:map":      TagMap,
	"!!omap":                     TagOMap,
	"tag:yaml.org,2002:omap":     TagOMap,
	"!!pairs":                    TagPairs,
	"!!set":                      TagSet,
	"!!seq":                      TagSeq,
	"!!binary":                   TagBinary,
	"!!bool":                     TagBool,
	"!!float":                    TagFloat,
	"!!int":                      TagInt,
	"!!merge":                    TagMerge,
	"!!null":                     TagNull,
	"!!str":                      TagStr,
	"!!timestamp":                TagTimestamp,
	"!!value":                    TagValue,
}

// ToTag maps a raw tag token to its canonical YamlTag, per spec.md
// §6.2: a bare "!" or any unrecognised "!!xxx" shorthand is TagNone
// (a user tag with no special handling).
func ToTag(token string) YamlTag {
	if tag, ok := tagTable[token]; ok {
		return tag
	}
	return TagNone
}

// CoerceTags is an opt-in post-resolve pass that validates (not
// converts — full core-schema conversion is out of scope) that every
// TAG_INT/TAG_FLOAT/TAG_BOOL/TAG_NULL-tagged scalar's bytes are
// lexically consistent with its tag. Run it after Resolve.
func CoerceTags(t *tree.Tree, root tree.NodeID, opts ...Option) {
	r := &resolver{t: t, handler: tymlerr.PanicHandler{}}
	for _, opt := range opts {
		opt(r)
	}
	r.coerceTags(root)
}

func (r *resolver) coerceTags(id tree.NodeID) {
	t := r.t

	if t.Type(id).IsKeyTagged() {
		r.checkTag(ToTag(string(t.Key(id).Tag)), t.Key(id).Scalar.String())
	}
	if t.Type(id).IsValTagged() {
		r.checkTag(ToTag(string(t.Val(id).Tag)), t.Val(id).Scalar.String())
	}

	for c := t.FirstChild(id); c != tree.NoneID; c = t.NextSibling(c) {
		r.coerceTags(c)
	}
}

func (r *resolver) checkTag(tag YamlTag, scalar string) {
	var ok bool
	switch tag {
	case TagInt:
		_, err := strconv.ParseInt(strings.TrimPrefix(scalar, "+"), 0, 64)
		ok = err == nil
	case TagFloat:
		_, err := strconv.ParseFloat(scalar, 64)
		ok = err == nil
	case TagBool:
		switch scalar {
		case "true", "false", "True", "False", "TRUE", "FALSE":
			ok = true
		}
	case TagNull:
		ok = scalar == "" || scalar == "~" || strings.EqualFold(scalar, "null")
	default:
		return
	}
	if !ok {
		r.fail(tymlerr.ReasonCodeUnrepresentable, fmt.Errorf("scalar %q is not consistent with tag %s", scalar, tag))
	}
}
