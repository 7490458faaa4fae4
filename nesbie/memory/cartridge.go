package memory

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrInvalidHeader is returned when the file does not start with an iNES header.
	ErrInvalidHeader = errors.New("invalid iNES header")
	// ErrTruncatedROM is returned when the file is shorter than its header declares.
	ErrTruncatedROM = errors.New("truncated ROM data")
	// ErrUnsupportedMapper is returned for boards with no mapper implementation.
	ErrUnsupportedMapper = errors.New("unsupported mapper")
)

const (
	inesMagic   = 0x1A53454E // "NES\x1A" little endian
	prgBankSize = 0x4000
	chrBankSize = 0x2000
	trainerSize = 512
	prgRAMUnit  = 0x2000
)

// inesHeader is the 16 byte header at the start of a .nes file.
type inesHeader struct {
	Magic    uint32
	PRGBanks uint8
	CHRBanks uint8
	Flags6   uint8
	Flags7   uint8
	PRGRAM   uint8
	_        [7]uint8
}

// Cartridge holds the contents of a ROM image and its board description.
type Cartridge struct {
	PRG []uint8
	CHR []uint8

	MapperID   uint8
	Mirroring  Mirroring
	Battery    bool
	Trainer    bool
	HasCHRRAM  bool
	NES2       bool
	VSSystem   bool
	PRGRAMSize int
}

// NewCartridge builds a cartridge from raw banks, mostly for tests and tools.
// An empty CHR slice gets 8KB of CHR RAM.
func NewCartridge(prg, chr []uint8, mapperID uint8, mirroring Mirroring) *Cartridge {
	cart := &Cartridge{
		PRG:       prg,
		CHR:       chr,
		MapperID:  mapperID,
		Mirroring: mirroring,
	}
	if len(chr) == 0 {
		cart.CHR = make([]uint8, chrBankSize)
		cart.HasCHRRAM = true
	}
	return cart
}

// LoadCartridge parses an iNES image.
func LoadCartridge(r io.Reader) (*Cartridge, error) {
	var header inesHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	if header.Magic != inesMagic {
		return nil, fmt.Errorf("%w: bad magic 0x%08X", ErrInvalidHeader, header.Magic)
	}
	if header.PRGBanks == 0 {
		return nil, fmt.Errorf("%w: no PRG banks", ErrInvalidHeader)
	}

	cart := &Cartridge{
		MapperID:   header.Flags6>>4 | header.Flags7&0xF0,
		Battery:    header.Flags6&0x02 != 0,
		Trainer:    header.Flags6&0x04 != 0,
		VSSystem:   header.Flags7&0x01 != 0,
		NES2:       header.Flags7&0x0C == 0x08,
		PRGRAMSize: int(header.PRGRAM) * prgRAMUnit,
	}

	switch {
	case header.Flags6&0x08 != 0:
		cart.Mirroring = MirrorFourScreen
	case header.Flags6&0x01 != 0:
		cart.Mirroring = MirrorVertical
	default:
		cart.Mirroring = MirrorHorizontal
	}

	if cart.Trainer {
		if _, err := io.CopyN(io.Discard, r, trainerSize); err != nil {
			return nil, fmt.Errorf("%w: trainer: %v", ErrTruncatedROM, err)
		}
	}

	cart.PRG = make([]uint8, int(header.PRGBanks)*prgBankSize)
	if _, err := io.ReadFull(r, cart.PRG); err != nil {
		return nil, fmt.Errorf("%w: PRG ROM: %v", ErrTruncatedROM, err)
	}

	if header.CHRBanks == 0 {
		cart.CHR = make([]uint8, chrBankSize)
		cart.HasCHRRAM = true
	} else {
		cart.CHR = make([]uint8, int(header.CHRBanks)*chrBankSize)
		if _, err := io.ReadFull(r, cart.CHR); err != nil {
			return nil, fmt.Errorf("%w: CHR ROM: %v", ErrTruncatedROM, err)
		}
	}

	return cart, nil
}

// LoadCartridgeFile opens and parses a .nes file.
func LoadCartridgeFile(path string) (*Cartridge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ROM: %w", err)
	}
	defer f.Close()

	cart, err := LoadCartridge(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return cart, nil
}
