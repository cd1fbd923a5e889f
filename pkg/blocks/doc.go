/*
Package blocks renders the editable regions of a page.

A page is described by a map of Blocks keyed by block id. Each Block names a
controller Factory, the selector of its element in the page and whether it is
rendered in the browser instead of on the server. A Renderer instantiates the
controllers and feeds them the page data: ProxyData replaces the values of a
data map with their rendered form, RenderBlocks produces the rendered form of
every block.

Each and Collect are the fan-out helpers used to call one operation on every
member of a keyed set.
*/
package blocks
