/*
Package dom contains helpers for working with page documents whose
editable regions ("blocks") are marked with data-* attributes.

The central operation is FirstLevel: given a root and a CSS selector it
returns the matches that do not have another match as an ancestor below
the root, in document order. It is written once against the Tree
capability and ships with two trees:

  - HTMLTree works on raw *html.Node values and compares nodes by identity.
  - SelectionTree works on *goquery.Selection wrappers. Every query or
    parent lookup yields a fresh wrapper, so nodes are compared
    structurally with package equal.

The package also extracts block options from data-* attributes and
injects stylesheet links into a document head.
*/
package dom
