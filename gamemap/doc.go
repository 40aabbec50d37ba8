/*
Package gamemap deserializes Fallout 1 map files (.MAP) into their
placed objects and script records.

A map file is a fixed 236-byte header followed by variable sections in
a strict order: global variables, local variables, tile grids for the
elevations the header flags mark as present, five per-kind script
lists, and finally the objects grouped by elevation. None of the
sections is length-prefixed as a whole, so a single misread desyncs
everything after it; the parser returns what it recovered rather than
an error.

Two records sizes are data-dependent. A script record's size follows
the kind in its own SID, and an item or scenery object's payload size
follows its prototype subtype, which lives in the .PRO files rather
than the map. Construct the parser with the tables from LoadSubtypes
to decode those payloads:

	items, scenery, err := gamemap.LoadSubtypes(archive)
	if err != nil {
		return err
	}
	p := gamemap.NewParser(
		gamemap.WithItemSubtypes(items),
		gamemap.WithScenerySubtypes(scenery),
	)
	m, err := p.ParseFromArchive(archive, `MAPS\JUNKTOWN.MAP`)
*/
package gamemap
