package debug

import "fmt"

const (
	OAMSpriteCount    = 64
	OAMBytesPerSprite = 4
	MaxSpritesPerLine = 8
)

// Sprite attribute bits
const (
	AttrFlipY   = 0x80
	AttrFlipX   = 0x40
	AttrBehind  = 0x20
	AttrPalette = 0x03
)

type SpriteInfo struct {
	Index      int
	Y          int
	X          int
	TileIndex  uint8
	Attributes uint8
	IsVisible  bool
}

type OAMData struct {
	Sprites       []SpriteInfo
	CurrentLine   int
	ActiveSprites int
	SpriteHeight  int
}

// ExtractOAMData decodes primary OAM and marks the sprites covering currentLine.
// Sprites are drawn one line below their OAM Y.
func ExtractOAMData(oam [256]uint8, currentLine, spriteHeight int) *OAMData {
	data := &OAMData{
		Sprites:      make([]SpriteInfo, OAMSpriteCount),
		CurrentLine:  currentLine,
		SpriteHeight: spriteHeight,
	}

	for i := range data.Sprites {
		raw := oam[i*OAMBytesPerSprite : (i+1)*OAMBytesPerSprite]
		top := int(raw[0]) + 1
		visible := currentLine >= top && currentLine < top+spriteHeight

		data.Sprites[i] = SpriteInfo{
			Index:      i,
			Y:          int(raw[0]),
			X:          int(raw[3]),
			TileIndex:  raw[1],
			Attributes: raw[2],
			IsVisible:  visible,
		}
		if visible {
			data.ActiveSprites++
		}
	}

	return data
}

func (s *SpriteInfo) String() string {
	flags := ""
	if s.Attributes&AttrFlipX != 0 {
		flags += "H"
	}
	if s.Attributes&AttrFlipY != 0 {
		flags += "V"
	}
	if s.Attributes&AttrBehind != 0 {
		flags += "B"
	}
	return fmt.Sprintf("#%02d (%3d,%3d) tile:%02X pal:%d %s",
		s.Index, s.X, s.Y, s.TileIndex, s.Attributes&AttrPalette, flags)
}
