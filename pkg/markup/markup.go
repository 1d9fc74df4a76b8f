package markup

// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: LGPL-3.0

import (
	"net/url"
	"strings"

	blackfriday "github.com/russross/blackfriday/v2"
)

// Visitor renders the nodes of a Markdown syntax tree as AsciiDoc. Container nodes are visited
// twice, once when entering and once when leaving them.
type Visitor struct {
	sb    strings.Builder
	lists []blackfriday.ListType
}

// Convert translates Markdown text to AsciiDoc. Headings are shifted down by one level since the
// generated document already has a title.
func Convert(data []byte) string {
	visitor := &Visitor{}
	Tokenize(data, visitor)
	return visitor.String()
}

// Tokenize parses the Markdown input and walks the syntax tree with the visitor.
func Tokenize(data []byte, visitor *Visitor) {
	md := blackfriday.New(blackfriday.WithExtensions(blackfriday.CommonExtensions))
	document := md.Parse(data)
	document.Walk(visitor.visit)
}

// String returns the AsciiDoc rendered so far, ending with exactly one newline.
func (v *Visitor) String() string {
	out := strings.TrimRight(v.sb.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

func (v *Visitor) visit(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
	if entering && continuesItem(node) {
		v.sb.WriteString("+\n")
	}
	switch node.Type {
	case blackfriday.Heading:
		if entering {
			v.sb.WriteString(strings.Repeat("=", node.HeadingData.Level+1) + " ")
		} else {
			v.sb.WriteString("\n\n")
		}
	case blackfriday.Paragraph:
		if !entering {
			v.endBlock(node)
		}
	case blackfriday.Text:
		v.sb.Write(node.Literal)
	case blackfriday.Softbreak:
		v.sb.WriteString("\n")
	case blackfriday.Hardbreak:
		v.sb.WriteString(" +\n")
	case blackfriday.Emph:
		v.sb.WriteString("_")
	case blackfriday.Strong:
		v.sb.WriteString("*")
	case blackfriday.Del:
		if entering {
			v.sb.WriteString("[line-through]#")
		} else {
			v.sb.WriteString("#")
		}
	case blackfriday.Code:
		v.sb.WriteString("`" + string(node.Literal) + "`")
	case blackfriday.Link:
		if entering {
			v.sb.WriteString(linkTarget(string(node.LinkData.Destination)) + "[")
		} else {
			v.sb.WriteString("]")
		}
	case blackfriday.Image:
		if entering {
			v.sb.WriteString("image:" + string(node.LinkData.Destination) + "[")
		} else {
			v.sb.WriteString("]")
		}
	case blackfriday.List:
		v.visitList(node, entering)
	case blackfriday.Item:
		if entering {
			v.sb.WriteString(v.itemMarker() + " ")
		}
	case blackfriday.CodeBlock:
		v.visitCodeBlock(node)
	case blackfriday.BlockQuote:
		if entering {
			v.sb.WriteString("____\n")
		} else {
			v.sb.WriteString("____\n" + blockEnd(node))
		}
	case blackfriday.HorizontalRule:
		v.sb.WriteString("'''\n\n")
	case blackfriday.HTMLBlock:
		v.sb.WriteString("++++\n" + strings.TrimRight(string(node.Literal), "\n") + "\n++++\n\n")
	case blackfriday.HTMLSpan:
		v.sb.WriteString("+++" + string(node.Literal) + "+++")
	case blackfriday.Table:
		if entering {
			v.sb.WriteString("|===\n")
		} else {
			v.sb.WriteString("|===\n" + blockEnd(node))
		}
	case blackfriday.TableHead:
		if !entering {
			v.sb.WriteString("\n")
		}
	case blackfriday.TableRow:
		if !entering {
			v.sb.WriteString("\n")
		}
	case blackfriday.TableCell:
		if entering {
			v.sb.WriteString("|")
		} else {
			v.sb.WriteString(" ")
		}
	}
	return blackfriday.GoToNext
}

// endBlock terminates a paragraph. Inside list items and at the end of a block quote a single
// line break keeps the content attached to its container.
func (v *Visitor) endBlock(node *blackfriday.Node) {
	parent := node.Parent
	if parent != nil && parent.Type == blackfriday.Item {
		v.sb.WriteString("\n")
		return
	}
	if parent != nil && parent.Type == blackfriday.BlockQuote && node.Next == nil {
		v.sb.WriteString("\n")
		return
	}
	v.sb.WriteString("\n\n")
}

func (v *Visitor) visitList(node *blackfriday.Node, entering bool) {
	if entering {
		v.lists = append(v.lists, node.ListData.ListFlags)
		return
	}
	v.lists = v.lists[:len(v.lists)-1]
	if len(v.lists) == 0 {
		v.sb.WriteString("\n")
	}
}

func (v *Visitor) itemMarker() string {
	depth := len(v.lists)
	if depth == 0 {
		return "*"
	}
	marker := "*"
	if v.lists[depth-1]&blackfriday.ListTypeOrdered != 0 {
		marker = "."
	}
	return strings.Repeat(marker, depth)
}

func (v *Visitor) visitCodeBlock(node *blackfriday.Node) {
	lang := strings.Fields(string(node.CodeBlockData.Info))
	if len(lang) > 0 {
		v.sb.WriteString("[source," + lang[0] + "]\n")
	}
	code := string(node.Literal)
	if !strings.HasSuffix(code, "\n") {
		code += "\n"
	}
	v.sb.WriteString("----\n" + code + "----\n" + blockEnd(node))
}

// continuesItem reports whether node is a further block of a list item. AsciiDoc needs a list
// continuation (+) to keep it attached to the item. Nested lists attach without one.
func continuesItem(node *blackfriday.Node) bool {
	if node.Parent == nil || node.Parent.Type != blackfriday.Item || node.Prev == nil {
		return false
	}
	switch node.Type {
	case blackfriday.Paragraph, blackfriday.CodeBlock, blackfriday.BlockQuote, blackfriday.Table,
		blackfriday.HorizontalRule, blackfriday.HTMLBlock, blackfriday.Heading:
		return true
	}
	return false
}

// blockEnd separates a block from the next one. Inside list items a blank line would end the
// continuation.
func blockEnd(node *blackfriday.Node) string {
	if node.Parent != nil && node.Parent.Type == blackfriday.Item {
		return ""
	}
	return "\n"
}

// linkTarget prefixes relative destinations with the link macro. AsciiDoc only turns text
// followed by [...] into a link when it starts with a URL scheme.
func linkTarget(dest string) string {
	if u, err := url.Parse(dest); err == nil && u.Scheme != "" {
		return dest
	}
	return "link:" + dest
}
