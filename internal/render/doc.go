// Package render turns example and category descriptors into Markdown
// documents. Presentation lives in named text/template files embedded from
// templates/; this package only builds the typed context each template
// sees. Rendering is a pure function of its inputs: the same descriptor and
// artifact text always produce byte-identical output.
package render
