/*
Package templating renders page blocks with Go html/template files loaded
from the filesystem.

Block templates live in a "templates" directory under the data directory and
are named <block>.tmpl.html; shared partials are named *.part.html. A
TemplateManager parses both sets, reloads them on Refresh, and acts as a
blocks.Factory: the controller it returns for a block renders the template
named after the block's "block" option with a BlockInput value.

All methods of TemplateManager are safe for concurrent use.
*/
package templating
