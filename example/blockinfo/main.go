package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/robmikh/webm-iterable/matroska"
	"github.com/robmikh/webm-iterable/webm"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalln("usage: blockinfo <file.webm>")
	}
	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalln(err)
	}
	defer f.Close()

	r := webm.NewReader(f)
	r.BufferMaster(webm.IDInfo, webm.IDTracks)

	var base uint64
	for {
		tag, err := r.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			log.Fatalln(err)
		}

		switch tag.ID {
		case webm.IDTimecode:
			base = tag.Data.Uint
		case webm.IDTracks:
			for _, kid := range tag.Data.Children {
				if kid.ID == webm.IDTrackEntry {
					fmt.Printf("track entry: %d children\n", len(kid.Data.Children))
				}
			}
		case webm.IDSimpleBlock:
			sb, err := matroska.SimpleBlockFromTag(tag.Data)
			if err != nil {
				log.Println("skipping bad simple block:", err)
				continue
			}
			fmt.Printf("track %d time %d key=%v discardable=%v lacing=%s frames=%d\n",
				sb.Track, int64(base)+int64(sb.Timecode), sb.Keyframe, sb.Discardable, sb.Lacing, len(sb.Frames))
		case webm.IDBlock:
			b, err := matroska.BlockFromTag(tag.Data)
			if err != nil {
				log.Println("skipping bad block:", err)
				continue
			}
			fmt.Printf("track %d time %d lacing=%s frames=%d\n",
				b.Track, int64(base)+int64(b.Timecode), b.Lacing, len(b.Frames))
		}
	}
}
