package attendance

import "sort"

// analyticsRow is one fetched record with its joined display fields.
type analyticsRow struct {
	PlayerID  string
	Points    int
	FirstName string
	LastName  string
	TeamID    *string
	TeamName  *string
}

// buildReport folds a record set into ranked player and team statistics.
// Ranking is descending by total points; ties keep encounter order, so the
// input must already be in insertion order.
func buildReport(rows []analyticsRow) *Report {
	report := &Report{
		Players: []PlayerStats{},
		Teams:   []TeamStats{},
	}

	playerIndex := make(map[string]int)
	for _, row := range rows {
		i, ok := playerIndex[row.PlayerID]
		if !ok {
			i = len(report.Players)
			playerIndex[row.PlayerID] = i
			report.Players = append(report.Players, PlayerStats{
				PlayerID:  row.PlayerID,
				FirstName: row.FirstName,
				LastName:  row.LastName,
				TeamName:  row.TeamName,
			})
		}
		report.Players[i].TotalPoints += row.Points
		report.Players[i].AttendanceCount++
	}

	teamIndex := make(map[string]int)
	distinctPlayers := make(map[string]map[string]struct{})
	for _, row := range rows {
		key, name := teamBucket(row)
		i, ok := teamIndex[key]
		if !ok {
			i = len(report.Teams)
			teamIndex[key] = i
			report.Teams = append(report.Teams, TeamStats{TeamID: key, TeamName: name})
			distinctPlayers[key] = make(map[string]struct{})
		}
		report.Teams[i].TotalPoints += row.Points
		distinctPlayers[key][row.PlayerID] = struct{}{}
	}
	for key, players := range distinctPlayers {
		report.Teams[teamIndex[key]].PlayerCount = len(players)
	}

	sort.SliceStable(report.Players, func(i, j int) bool {
		return report.Players[i].TotalPoints > report.Players[j].TotalPoints
	})
	sort.SliceStable(report.Teams, func(i, j int) bool {
		return report.Teams[i].TotalPoints > report.Teams[j].TotalPoints
	})
	return report
}

// teamBucket picks the grouping key and label for a record's team. Teamless
// records share the sentinel bucket; records pointing at a deleted team keep
// their own bucket under the snapshotted id.
func teamBucket(row analyticsRow) (key, name string) {
	if row.TeamID == nil {
		return noTeamBucketID, noTeamBucketName
	}
	if row.TeamName != nil {
		return *row.TeamID, *row.TeamName
	}
	return *row.TeamID, unknownLabel
}
