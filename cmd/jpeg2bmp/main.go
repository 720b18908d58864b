// Command jpeg2bmp decodes a baseline JPEG file and writes it out as a
// 24-bit BMP.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cocosip/go-jpeg-baseline/internal/bmp"
	"github.com/cocosip/go-jpeg-baseline/jpeg/baseline"
	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
)

func main() {
	var outputFile = flag.String("o", "", "Output BMP file (defaults to input filename with .bmp extension)")
	var verbose = flag.Bool("v", false, "Dump the parsed JPEG header")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: jpeg2bmp [-o output.bmp] [-v] input.jpg\n")
		os.Exit(2)
	}
	inputFile := flag.Arg(0)

	data, err := os.ReadFile(inputFile)
	if err != nil {
		fatalf("failed to read input file: %v", err)
	}

	if *verbose {
		header, err := baseline.ReadHeader(bytes.NewReader(data))
		if err != nil {
			fatalf("failed to parse header: %v", err)
		}
		printHeader(header)
	}

	img, err := baseline.DecodeImage(data)
	if err != nil {
		fatalf("failed to decode JPEG: %v", err)
	}

	out := *outputFile
	if out == "" {
		out = replaceExt(inputFile, ".bmp")
	}

	f, err := os.Create(out)
	if err != nil {
		fatalf("failed to create output file: %v", err)
	}
	defer f.Close()

	if err := bmp.Write(f, img); err != nil {
		fatalf("failed to write BMP: %v", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "jpeg2bmp: "+format+"\n", args...)
	os.Exit(1)
}

func replaceExt(path, ext string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[:i] + ext
	}
	return path + ext
}

// printHeader reports everything the marker parser extracted
func printHeader(h *baseline.Header) {
	fmt.Println("DQT=============")
	for i, qt := range h.QuantTables {
		if !qt.Set {
			continue
		}
		fmt.Printf("Table ID: %d\nTable Data:", i)
		for j, v := range qt.Table {
			if j%8 == 0 {
				fmt.Println()
			}
			fmt.Printf("%d ", v)
		}
		fmt.Println()
	}

	fmt.Println("SOF=============")
	fmt.Printf("Frame Type: 0x%X\n", h.FrameType&0xFF)
	fmt.Printf("Height: %d\n", h.Height)
	fmt.Printf("Width: %d\n", h.Width)

	fmt.Println("DHT=============")
	fmt.Println("DC Tables:")
	printHuffmanTables(h.DCTables[:])
	fmt.Println("AC Tables:")
	printHuffmanTables(h.ACTables[:])

	fmt.Println("SOS=============")
	fmt.Printf("Start of Selection: %d\n", h.StartOfSelection)
	fmt.Printf("End of Selection: %d\n", h.EndOfSelection)
	fmt.Printf("Successive Approximation High: %d\n", h.SuccessiveApproximationHigh)
	fmt.Printf("Successive Approximation Low: %d\n", h.SuccessiveApproximationLow)
	fmt.Printf("Restart Interval: %d\n", h.RestartInterval)
	fmt.Println("Color Components:")
	for i := 0; i < h.NumComponents; i++ {
		comp := &h.Components[i]
		fmt.Printf("Component ID: %d\n", i+1)
		fmt.Printf("Horizontal Sampling Factor: %d\n", comp.H)
		fmt.Printf("Vertical Sampling Factor: %d\n", comp.V)
		fmt.Printf("Quantization Table ID: %d\n", comp.Tq)
		fmt.Printf("Huffman DC Table ID: %d\n", comp.Td)
		fmt.Printf("Huffman AC Table ID: %d\n", comp.Ta)
	}
	fmt.Printf("Length of Huffman Data: %d\n", len(h.EntropyData))
}

func printHuffmanTables(tables []common.HuffmanTable) {
	for i := range tables {
		t := &tables[i]
		if !t.Set {
			continue
		}
		fmt.Printf("Table ID: %d\nSymbols:\n", i)
		for l := 0; l < 16; l++ {
			fmt.Printf("%d: ", l+1)
			for k := t.Offsets[l]; k < t.Offsets[l+1]; k++ {
				fmt.Printf("%d ", t.Symbols[k])
			}
			fmt.Println()
		}
	}
}
