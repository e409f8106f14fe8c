package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/braheezy/rlad/internal/wavio"
	"github.com/braheezy/rlad/pkg/rlad"
	"github.com/spf13/cobra"
)

var lossy bool

var convertCmd = &cobra.Command{
	Use:   "convert <input-file> <output-file>",
	Short: "Convert between WAV and RLAD",
	Long:  "Convert a WAV file to RLAD or an RLAD file back to WAV, based on file extension.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]
		outputFile := args[1]

		if !isSupportedConversion(inputFile, outputFile) {
			logger.Fatal("Unsupported conversion: need one .wav and one .rlad file")
		}
		if err := convertAudio(inputFile, outputFile); err != nil {
			logger.Fatalf("Error converting %s -> %s: %v", inputFile, outputFile, err)
		}
		logger.Infof("Conversion completed: %s -> %s", inputFile, outputFile)
	},
	DisableFlagsInUseLine: true,
}

func init() {
	convertCmd.Flags().BoolVar(&lossy, "lossy", false, "Encode RLAD lossily instead of losslessly")
	rootCmd.AddCommand(convertCmd)
}

func isSupportedConversion(inputFile, outputFile string) bool {
	inExt := strings.ToLower(filepath.Ext(inputFile))
	outExt := strings.ToLower(filepath.Ext(outputFile))
	pair := [2]string{inExt, outExt}
	return pair == [2]string{".wav", ".rlad"} || pair == [2]string{".rlad", ".wav"}
}

func convertAudio(inputFile, outputFile string) error {
	inExt := strings.ToLower(filepath.Ext(inputFile))

	switch inExt {
	case ".wav":
		return wavToRLAD(inputFile, outputFile)
	case ".rlad":
		return rladToWAV(inputFile, outputFile)
	default:
		return fmt.Errorf("unsupported input format: %s", inExt)
	}
}

func wavToRLAD(inputFile, outputFile string) error {
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
	if lossy {
		mode = rlad.Lossy
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer out.Close()

	return rlad.EncodeFile(out, samples, uint32(sampleRate), rlad.AudioChannels(channels), mode)
}

func rladToWAV(inputFile, outputFile string) error {
	in, err := os.Open(inputFile)
	if err != nil {
		return err
	}
	defer in.Close()

	reader, err := rlad.Open(in)
	if err != nil {
		return err
	}

	buf := make([]int16, rlad.FramesPerBlock*int(reader.Channels()))
	var samples []int16
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			samples = append(samples, buf[:n*int(reader.Channels())]...)
		}
		if err != nil {
			return err
		}
		if n == 0 {
			break
		}
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer out.Close()

	return wavio.WritePCM(out, samples, int(reader.SampleRate()), int(reader.Channels()))
}
