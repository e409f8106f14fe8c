package cmd

import (
	"os"

	"github.com/braheezy/rlad/internal/wavio"
	"github.com/braheezy/rlad/pkg/rlad"
	"github.com/spf13/cobra"
)

var encodeLossy bool

var encodeCmd = &cobra.Command{
	Use:   "encode <input.wav> <output.rlad>",
	Short: "Encode a WAV file directly to RLAD",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runEncode(args[0], args[1]); err != nil {
			logger.Fatalf("Error encoding %s -> %s: %v", args[0], args[1], err)
		}
		logger.Infof("Encoded: %s -> %s", args[0], args[1])
	},
	DisableFlagsInUseLine: true,
}

func init() {
	encodeCmd.Flags().BoolVar(&encodeLossy, "lossy", false, "Encode RLAD lossily instead of losslessly")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(inputFile, outputFile string) error {
	in, err := os.Open(inputFile)
	if err != nil {
		return err
	}
	defer in.Close()

	samples, sampleRate, channels, err := wavio.ReadPCM(in)
	if err != nil {
		return err
	}
	if channels > rlad.MaxChannels {
		return &rlad.ArgumentOutOfRangeError{Arg: "channels", Value: channels, Max: rlad.MaxChannels}
	}

	mode := rlad.Lossless
	if encodeLossy {
		mode = rlad.Lossy
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer out.Close()

	return rlad.EncodeFile(out, samples, uint32(sampleRate), rlad.AudioChannels(channels), mode)
}
