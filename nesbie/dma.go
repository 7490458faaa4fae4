package nesbie

import (
	"github.com/valerio/go-nesbie/nesbie/addr"
	"github.com/valerio/go-nesbie/nesbie/cpu"
)

// dma is the OAM DMA unit. A write to $4014 requests a copy of a 256 byte
// CPU page into OAM; the CPU is stalled while it alternates read and write
// cycles, after one or two alignment cycles.
type dma struct {
	pending bool
	active  bool
	page    uint8

	cycle int // cycles into the transfer
	total int // 513 or 514
	value uint8
}

const (
	dmaCycles = 513
	oamBytes  = 256
)

func (d *dma) request(page uint8) {
	d.pending = true
	d.page = page
}

// start begins a requested transfer. Starting on an odd CPU cycle costs an
// extra alignment cycle.
func (d *dma) start(cycles uint64) {
	if !d.pending {
		return
	}
	d.pending = false
	d.active = true
	d.cycle = 0
	d.total = dmaCycles
	if cycles%2 == 1 {
		d.total++
	}
}

// transfer runs one stalled CPU cycle.
func (d *dma) transfer(bus cpu.Bus) {
	step := d.cycle - (d.total - 2*oamBytes)
	if step >= 0 {
		if step%2 == 0 {
			d.value = bus.Read(uint16(d.page)<<8 | uint16(step/2))
		} else {
			bus.Write(addr.OAMDATA, d.value)
		}
	}

	d.cycle++
	if d.cycle == d.total {
		d.active = false
	}
}
