package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const (
	cellSize  = 20
	margin    = 20
	boardSize = cellSize * entity.BoardSize
	ImageSize = boardSize + margin*2

	stoneRadius = 7
)

var stoneColors = map[entity.Player]string{
	entity.PlayerFirst:  "#2563eb",
	entity.PlayerSecond: "#dc2626",
}

// SVG draws the board with its stones; winning cells are highlighted.
func SVG(game *entity.Game) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, ImageSize, ImageSize, ImageSize, ImageSize)
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="#f4efe6"/>`, ImageSize, ImageSize)
	fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="#dcb35c"/>`, margin, margin, boardSize, boardSize)

	for _, cell := range game.WinningLine {
		x, y := cellOrigin(cell)
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="#ffe27a"/>`, x, y, cellSize, cellSize)
	}

	for i := 0; i <= entity.BoardSize; i++ {
		offset := margin + i*cellSize
		fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#8a6a2b" stroke-width="1"/>`, margin, offset, margin+boardSize, offset)
		fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#8a6a2b" stroke-width="1"/>`, offset, margin, offset, margin+boardSize)
	}

	for cell, player := range game.Board {
		if player == entity.EmptyCell {
			continue
		}

		x, y := cellOrigin(cell)
		fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%d" fill="%s"/>`, x+cellSize/2, y+cellSize/2, stoneRadius, stoneColors[player])
	}

	b.WriteString(`</svg>`)

	return []byte(b.String())
}

// PNG rasterizes SVG into a square image of ImageSize pixels.
func PNG(game *entity.Game) ([]byte, error) {
	img, err := Image(game)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}

	return buf.Bytes(), nil
}

func Image(game *entity.Game) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(SVG(game)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse board svg: %w", err)
	}

	icon.SetTarget(0, 0, ImageSize, ImageSize)

	img := image.NewRGBA(image.Rect(0, 0, ImageSize, ImageSize))
	scanner := rasterx.NewScannerGV(ImageSize, ImageSize, img, img.Bounds())
	raster := rasterx.NewDasher(ImageSize, ImageSize, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}

func cellOrigin(cell int) (int, int) {
	row, col := entity.CellPosition(cell)
	return margin + col*cellSize, margin + row*cellSize
}
