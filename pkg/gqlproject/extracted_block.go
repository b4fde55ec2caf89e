package gqlproject

// ExtractedBlock is one embedded query string pulled out of a host-language
// source file by the external extractor (pkg/extract), or the whole file
// for a native query document. The origin locates where the block's first
// byte sits inside its host file.
type ExtractedBlock struct {
	Source     string // the embedded query text itself
	File       string // the host file path this block came from
	OriginByte int
	OriginLine int // 0-based
	OriginCol  int // 0-based, characters
	Tag        string // tagged-template tag name, "" for native files
}

// absoluteNamePosition combines a block's origin with the in-block 0-based
// position of a name token to produce the name's absolute position in the
// host file: if the name is on the first line of the block, the block's
// starting column is added; otherwise the in-block column is used as-is.
func absoluteNamePosition(block ExtractedBlock, inBlock Position) Position {
	line := block.OriginLine + inBlock.Line
	col := inBlock.Column
	if inBlock.Line == 0 {
		col += block.OriginCol
	}
	return Position{Line: line, Column: col}
}
