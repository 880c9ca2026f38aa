package api

import (
	"context"
	"net/url"
)

// Login exchanges credentials for a token and profile. Feeding the result
// into the session store is the caller's job.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.post(ctx, "/auth/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ForgotPassword asks the backend to send a reset OTP to email.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*StatusMessage, error) {
	var out StatusMessage
	if err := c.post(ctx, "/auth/forgot-password", "", map[string]string{"email": email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (*StatusMessage, error) {
	body := map[string]string{"email": email, "otp": otp}
	var out StatusMessage
	if err := c.post(ctx, "/auth/verify-otp", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ChangePassword(ctx context.Context, email, newPassword string) (*StatusMessage, error) {
	body := map[string]string{"email": email, "newPassword": newPassword}
	var out StatusMessage
	if err := c.post(ctx, "/auth/change-password", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GuideTeams(ctx context.Context, token string) ([]Team, error) {
	var out teamListEnvelope
	if err := c.get(ctx, "/teams/guide-teams", token, &out); err != nil {
		return nil, err
	}
	return out.Teams, nil
}

func (c *Client) TeamDetails(ctx context.Context, token, teamID string) (*TeamDetail, error) {
	var out TeamDetail
	if err := c.get(ctx, "/teams/details/"+url.PathEscape(teamID), token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) StudentTeams(ctx context.Context, token string) ([]Team, error) {
	var out teamListEnvelope
	if err := c.get(ctx, "/teams/student-teams", token, &out); err != nil {
		return nil, err
	}
	return out.Teams, nil
}

func (c *Client) StudentTeamDetails(ctx context.Context, token, teamID string) (*TeamDetail, error) {
	var out TeamDetail
	if err := c.get(ctx, "/teams/student/team/"+url.PathEscape(teamID), token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GuideMeetings(ctx context.Context, token string) ([]Meeting, error) {
	var out meetingListEnvelope
	if err := c.get(ctx, "/meetings/guide-meeting", token, &out); err != nil {
		return nil, err
	}
	return out.Meetings, nil
}

func (c *Client) MeetingDetails(ctx context.Context, token, meetingID string) (*MeetingDetail, error) {
	var out MeetingDetail
	if err := c.get(ctx, "/meetings/details/"+url.PathEscape(meetingID), token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MomData returns the meeting plus the member roster needed to record
// attendance.
func (c *Client) MomData(ctx context.Context, token, meetingID string) (*MomData, error) {
	var out MomData
	if err := c.get(ctx, "/meetings/"+url.PathEscape(meetingID)+"/mom-data", token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateMom(ctx context.Context, token, meetingID string, mom Mom) (*StatusMessage, error) {
	var out StatusMessage
	if err := c.post(ctx, "/meetings/"+url.PathEscape(meetingID)+"/mom", token, mom, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateMeeting(ctx context.Context, token string, in CreateMeetingInput) (*StatusMessage, error) {
	var out StatusMessage
	if err := c.post(ctx, "/meetings/create", token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) StudentMeetings(ctx context.Context, token string) ([]Meeting, error) {
	var out meetingListEnvelope
	if err := c.get(ctx, "/meetings/student/meetings", token, &out); err != nil {
		return nil, err
	}
	return out.Meetings, nil
}

func (c *Client) StudentMeetingDetails(ctx context.Context, token, meetingID string) (*MeetingDetail, error) {
	var out MeetingDetail
	if err := c.get(ctx, "/meetings/student/meeting/"+url.PathEscape(meetingID), token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyProfile(ctx context.Context, token string) (*UserProfile, error) {
	var out UserProfile
	if err := c.get(ctx, "/profile/me", token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PublicStudentProfile looks up a student by email. No token required.
func (c *Client) PublicStudentProfile(ctx context.Context, email string) (*PublicProfile, error) {
	var out PublicProfile
	if err := c.get(ctx, "/public/student?email="+url.QueryEscape(email), "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GuideDashboard(ctx context.Context, token string) (*Dashboard, error) {
	var out Dashboard
	if err := c.get(ctx, "/guide/dashboard", token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) StudentDashboard(ctx context.Context, token string) (*Dashboard, error) {
	var out Dashboard
	if err := c.get(ctx, "/student/dashboard", token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
