package main

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/digbiz/insight-engine/internal/model"
)

var (
	meetingUser1JSON   string
	meetingUser2JSON   string
	meetingID1         string
	meetingID2         string
	meetingContextJSON string
)

var meetingCmd = &cobra.Command{
	Use:   "meeting",
	Short: "Predict the success probability of a planned meeting",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEngines(cfg)
		if err != nil {
			return err
		}

		user1, err := loadProfileArg(ctx, meetingUser1JSON, meetingID1)
		if err != nil {
			return err
		}
		user2, err := loadProfileArg(ctx, meetingUser2JSON, meetingID2)
		if err != nil {
			return err
		}

		var meetingCtx *model.MeetingContext
		if meetingContextJSON != "" {
			meetingCtx = &model.MeetingContext{}
			if err := json.Unmarshal([]byte(meetingContextJSON), meetingCtx); err != nil {
				return eris.Wrap(err, "parse context JSON")
			}
		}

		prob := env.Matcher.MeetingSuccess(user1, user2, meetingCtx)
		return printJSON(map[string]any{
			"success_probability": prob,
			"meeting_grade":       model.MeetingGrade(prob),
		})
	},
}

func init() {
	f := meetingCmd.Flags()
	f.StringVar(&meetingUser1JSON, "user1", "", "first profile as inline JSON")
	f.StringVar(&meetingUser2JSON, "user2", "", "second profile as inline JSON")
	f.StringVar(&meetingID1, "profile-a", "", "first profile ID from the store")
	f.StringVar(&meetingID2, "profile-b", "", "second profile ID from the store")
	f.StringVar(&meetingContextJSON, "context", "", `meeting context as JSON, e.g. {"type":"business","location":"office","timing":"business_hours"}`)
	rootCmd.AddCommand(meetingCmd)
}
