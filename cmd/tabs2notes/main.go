// Package main is the entry point for tabs2notes CLI
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/james-see/tabs2notes/pkg/api"
	"github.com/james-see/tabs2notes/pkg/converter"
	"github.com/james-see/tabs2notes/pkg/converter/instruments"
	"github.com/james-see/tabs2notes/pkg/notes"
	"github.com/james-see/tabs2notes/pkg/tablature"
	"github.com/james-see/tabs2notes/pkg/tui"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	outputFile     string
	instrumentName string
	namingName     string
	transpose      int
	debugLevel     int
	serverPort     int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tabs2notes",
	Short: "Convert a guitar or bass tablature to note names",
	Long: `tabs2notes reads plain text tablature and prints the notes it contains,
one line per string group, chords joined with "+".

Notes can be named in english (C D E), german (C D E ... H) or latin
(Do Re Mi) and transposed by a half-tone offset.

Examples:
  tabs2notes convert riff.tab
  tabs2notes convert riff.tab -i guitar6 -n english -t -2
  tabs2notes tab2midi riff.tab -o riff.mid
  tabs2notes midi2notes riff.mid
  tabs2notes note Sol#2
  tabs2notes note 60
  tabs2notes tui
  tabs2notes serve --port 8080`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Print the notes of a tablature",
	Long:  `Prints the notes of a tablature. With --output the result is written to a file whose format is detected from its extension (.notes or .mid).`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

var tab2midiCmd = &cobra.Command{
	Use:   "tab2midi <input.tab>",
	Short: "Convert a tablature to MIDI format",
	Args:  cobra.ExactArgs(1),
	RunE:  runTabToMIDI,
}

var midi2notesCmd = &cobra.Command{
	Use:   "midi2notes <input.mid>",
	Short: "Print the chords of a MIDI file as note names",
	Args:  cobra.ExactArgs(1),
	RunE:  runMIDIToNotes,
}

var noteCmd = &cobra.Command{
	Use:   "note <name|pitch>",
	Short: "Look up a note name or MIDI pitch",
	Args:  cobra.ExactArgs(1),
	RunE:  runNote,
}

var instrumentsCmd = &cobra.Command{
	Use:   "instruments",
	Short: "List supported instruments",
	Args:  cobra.NoArgs,
	RunE:  runInstruments,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&instrumentName, "instrument", "i", instruments.Bass4ID,
		fmt.Sprintf("Instrument the tablature is written for (%s)", strings.Join(instruments.IDs(), "|")))
	rootCmd.PersistentFlags().StringVarP(&namingName, "naming", "n", converter.DefaultNaming.String(),
		"Language in which notes will be displayed (english|german|latin)")
	rootCmd.PersistentFlags().IntVarP(&transpose, "transpose", "t", 0,
		"Transposition for instruments in other tonalities, in half-tones")
	rootCmd.PersistentFlags().IntVarP(&debugLevel, "debug", "d", 0,
		fmt.Sprintf("Parser debug level (0-%d)", tablature.MaxDebugLevel))

	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (.notes or .mid)")
	tab2midiCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .mid file path")
	midi2notesCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .notes file path")

	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(tab2midiCmd)
	rootCmd.AddCommand(midi2notesCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(instrumentsCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

// newConverter validates the global flags and builds a converter from them
func newConverter(cmd *cobra.Command) (*converter.Converter, error) {
	inst, err := instruments.Lookup(instrumentName)
	if err != nil {
		return nil, err
	}
	lang, err := notes.ParseLanguage(namingName)
	if err != nil {
		return nil, err
	}
	level := tablature.DebugLevel(debugLevel)
	if err := tablature.ValidateDebugLevel(level); err != nil {
		return nil, err
	}

	opts := []converter.Option{converter.WithNaming(lang), converter.WithTranspose(transpose)}
	if level > tablature.DebugOff {
		opts = append(opts, converter.WithDebug(cmd.ErrOrStderr(), level))
	}
	return converter.New(inst, opts...), nil
}

func getOutputPath(input, defaultExt string) string {
	if outputFile != "" {
		return outputFile
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + defaultExt
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	conv, err := newConverter(cmd)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := conv.ConvertFile(input, outputFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Converted %s -> %s\n", input, outputFile)
		return nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	res, err := conv.Notes(data)
	if err != nil {
		return err
	}
	if debugLevel > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "DEBUG: %s notes in %s groups\n",
			humanize.Comma(int64(res.NoteCount())), humanize.Comma(int64(len(res.Groups))))
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), res.String())
	return err
}

func runTabToMIDI(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := getOutputPath(input, ".mid")

	conv, err := newConverter(cmd)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	result, err := conv.TabToMIDI(data)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, result, 0644); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Converted %s -> %s (%s)\n", input, output, humanize.Bytes(uint64(len(result))))
	return nil
}

func runMIDIToNotes(cmd *cobra.Command, args []string) error {
	input := args[0]
	conv, err := newConverter(cmd)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	result, err := conv.MIDIToText(data)
	if err != nil {
		return err
	}

	if outputFile == "" {
		_, err = cmd.OutOrStdout().Write(result)
		return err
	}
	if err := os.WriteFile(outputFile, result, 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Converted %s -> %s\n", input, outputFile)
	return nil
}

func runNote(cmd *cobra.Command, args []string) error {
	arg := args[0]
	out := cmd.OutOrStdout()

	// Anything starting with a digit or a sign is read as a pitch
	if arg != "" && strings.ContainsAny(arg[:1], "0123456789-+") {
		pitch, err := notes.ParsePitch(arg)
		if err != nil {
			return err
		}
		for _, lang := range notes.Languages {
			name, err := notes.PitchToName(pitch, lang)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-8s %s\n", lang, name)
		}
		return nil
	}

	pitch, err := notes.NameToPitch(arg)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s = %d\n", arg, pitch)
	return nil
}

func runInstruments(cmd *cobra.Command, args []string) error {
	for _, inst := range instruments.All() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-16s %v\n", inst.ID(), inst.Name(), inst.Tuning())
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run()
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}
