package embedded

import (
	_ "embed"
)

// Embed prompt data files
//
//go:embed data/edit_system_instruction.txt
var EditSystemInstructionTxt []byte

//go:embed data/tagging_instructions.txt
var TaggingInstructionsTxt []byte

//go:embed data/room_analysis_instructions.txt
var RoomAnalysisInstructionsTxt []byte
