package main

import "testing"

func TestParseArgs(t *testing.T) {
	cases := []struct {
		name    string
		args    []string
		want    options
		wantErr bool
	}{
		{
			name: "plain prompt",
			args: []string{"list", "my", "files"},
			want: options{Prompt: "list my files"},
		},
		{
			name: "model and verbose before prompt",
			args: []string{"--model", "openai/gpt-4.1", "--verbose", "what", "is", "here"},
			want: options{Model: "openai/gpt-4.1", Verbose: true, Prompt: "what is here"},
		},
		{
			name: "flags interleaved with prompt words",
			args: []string{"show", "--verbose", "disk", "--model", "anthropic/claude-haiku-4-5", "usage"},
			want: options{Model: "anthropic/claude-haiku-4-5", Verbose: true, Prompt: "show disk usage"},
		},
		{
			name:    "no arguments",
			args:    nil,
			wantErr: true,
		},
		{
			name:    "flags only, empty prompt",
			args:    []string{"--verbose"},
			wantErr: true,
		},
		{
			name:    "model flag without value",
			args:    []string{"do", "something", "--model"},
			wantErr: true,
		},
		{
			name:    "model value consumed, prompt left empty",
			args:    []string{"--model", "openai/gpt-4.1"},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseArgs(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseArgs: %v", err)
			}
			if *got != tc.want {
				t.Errorf("parseArgs = %+v, want %+v", *got, tc.want)
			}
		})
	}
}
