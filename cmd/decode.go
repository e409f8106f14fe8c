package cmd

import (
	"os"

	"github.com/braheezy/rlad/internal/wavio"
	"github.com/braheezy/rlad/pkg/rlad"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <input.rlad> <output.wav>",
	Short: "Decode an RLAD file directly to WAV",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDecode(args[0], args[1]); err != nil {
			logger.Fatalf("Error decoding %s -> %s: %v", args[0], args[1], err)
		}
		logger.Infof("Decoded: %s -> %s", args[0], args[1])
	},
	DisableFlagsInUseLine: true,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(inputFile, outputFile string) error {
	in, err := os.Open(inputFile)
	if err != nil {
		return err
	}
	defer in.Close()

	reader, err := rlad.Open(in)
	if err != nil {
		return err
	}

	channelCount := int(reader.Channels())
	buf := make([]int16, rlad.FramesPerBlock*channelCount)
	samples := make([]int16, 0, reader.FrameCount()*int64(channelCount))
	for {
		n, err := reader.Read(buf)
		if err != nil {
			return err
		}
		if n == 0 {
			break
		}
		samples = append(samples, buf[:n*channelCount]...)
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer out.Close()

	return wavio.WritePCM(out, samples, int(reader.SampleRate()), channelCount)
}
