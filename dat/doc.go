/*
Package dat reads Fallout 1 DAT archive containers.

A DAT file is a nested associative-array index followed by entry data.
The index is parsed once when the archive is opened and is immutable
afterwards, so concurrent lookups and reads against the same Archive are
safe. Entry payloads are stored raw, fully LZSS-compressed, or chunked
(a mix of stored and LZSS sub-blocks sharing one decompression window);
the compression mode is selected by the high nibble of the entry's flags
word and dispatch is transparent to callers.

Paths inside the archive are case-insensitive and backslash-separated;
every lookup normalizes its argument, so "text/english/foo.msg" and
"TEXT\ENGLISH\FOO.MSG" name the same entry.

	a, err := dat.Open("MASTER.DAT")
	if err != nil {
		return err
	}
	defer a.Close()

	data, err := a.ReadFile(`SCRIPTS\ABEL.INT`)
	if errors.Is(err, dat.ErrNotFound) {
		// entry absent from the index
	}

	for _, p := range a.List("*.MAP") {
		fmt.Println(p)
	}
*/
package dat
