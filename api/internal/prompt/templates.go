package prompt

// Template bodies. Placeholders are {name} tokens substituted by Render;
// every other brace is literal schema text for the model.

const SpeakerIdentificationBody = `You are an expert conversation analyst. Analyze the following text and identify distinct speakers.

Rules:
1. Look for patterns indicating different speakers (names, pronouns, speech patterns, context clues)
2. If no clear identifiers exist, label speakers as "Speaker 1", "Speaker 2", etc.
3. Preserve the exact original text for each message
4. Note confidence level for each identification

Return a JSON object with this exact structure:
{
    "speakers_identified": ["Speaker 1", "Speaker 2"],
    "messages": [
        {
            "speaker": "Speaker 1",
            "text": "exact message text",
            "confidence": 0.85,
            "reasoning": "brief explanation of why this speaker was identified"
        }
    ],
    "analysis_notes": "any observations about the conversation structure",
    "confidence_overall": 0.75
}

Text to analyze:
{text}
`

const ConversationAnalysisBody = `You are a supportive, neutral, and unbiased psychological conversation analyst. Analyze this conversation providing actionable insights.

Provide analysis that is:
- Supportive: Help the user understand patterns without judgment
- Neutral: No bias toward any speaker
- Actionable: Specific suggestions for improvement

Analyze for ALL of the following:
1. Power dynamics between speakers
2. Communication styles (passive, aggressive, assertive, passive-aggressive)
3. Manipulation patterns (if any): gaslighting, DARVO, deflection, etc.
4. Attachment style indicators
5. Emotional regulation patterns
6. Defense mechanisms employed
7. Red flags and green flags
8. Specific behaviors from the behavior library that match

Return a JSON object:
{
    "summary": "2-3 sentence overview",
    "power_dynamics": {
        "assessment": "description",
        "indicators": ["specific examples from text"],
        "balance_score": 0-10
    },
    "speaker_analyses": [
        {
            "speaker": "name",
            "communication_style": {
                "primary": "assertive/passive/aggressive/passive-aggressive",
                "examples": ["quotes from conversation"],
                "effectiveness_score": 0-10
            },
            "emotional_patterns": {
                "regulation_level": "well-regulated/moderately-regulated/dysregulated",
                "triggers_observed": ["list"],
                "coping_mechanisms": ["list"]
            },
            "attachment_indicators": {
                "likely_style": "secure/anxious/avoidant/disorganized",
                "evidence": ["specific examples"]
            },
            "behaviors_exhibited": [
                {
                    "behavior_id": "id from library",
                    "behavior_name": "name",
                    "examples": ["quotes"],
                    "frequency": "rare/occasional/frequent",
                    "impact": "positive/neutral/negative"
                }
            ],
            "strengths": ["list"],
            "growth_areas": ["list"],
            "red_flags": ["if any"],
            "green_flags": ["positive indicators"]
        }
    ],
    "relationship_dynamics": {
        "overall_health": "healthy/concerning/unhealthy",
        "patterns": ["recurring patterns"],
        "conflict_style": "description",
        "resolution_potential": "high/medium/low"
    },
    "manipulation_check": {
        "detected": true/false,
        "types": ["if any"],
        "examples": ["specific quotes"],
        "severity": "none/mild/moderate/severe"
    },
    "actionable_insights": [
        {
            "for_speaker": "name or 'both'",
            "insight": "specific observation",
            "suggestion": "actionable recommendation",
            "expected_outcome": "what improvement might look like"
        }
    ],
    "conversation_health_score": 0-100,
    "follow_up_questions": ["questions that might help deeper understanding"]
}

Speakers in conversation: {speakers}
Behavior library categories to reference: {behavior_categories}

Conversation:
{conversation}
`

const ResponseImpactBody = `You are a communication dynamics expert. The user wants to understand how a potential response might impact their conversation.

Context:
- Previous conversation provided below
- User is: {user_speaker}
- User's drafted response: {draft_response}

Analyze the potential impact and provide alternatives.

Return JSON:
{
    "impact_analysis": {
        "likely_reception": "how the other person might receive this",
        "emotional_impact": "predicted emotional response",
        "power_dynamic_shift": "how it changes the dynamic",
        "escalation_risk": "low/medium/high",
        "de_escalation_potential": "low/medium/high",
        "predicted_outcomes": ["possible responses/outcomes"]
    },
    "tone_analysis": {
        "detected_tone": "assertive/defensive/aggressive/etc",
        "alignment_with_goals": "does this help achieve user's likely goals?",
        "potential_misinterpretations": ["ways it could be misread"]
    },
    "alternative_responses": [
        {
            "response": "alternative text",
            "approach": "assertive/empathetic/boundary-setting/etc",
            "likely_impact": "expected outcome",
            "best_for": "situation where this works best"
        }
    ],
    "recommended_response": {
        "text": "best suggested response",
        "reasoning": "why this is recommended",
        "expected_outcome": "likely result"
    },
    "communication_tips": ["specific tips for this situation"]
}

Previous conversation:
{conversation}
`

const ProfileBody = `You are creating a comprehensive psychological profile based on multiple conversation analyses.
This must be supportive, unbiased, and actionable.

Historical data:
{profile_data}

Create a detailed profile analysis:
{
    "profile_summary": "3-4 sentence overview of this person's communication patterns",
    "communication_profile": {
        "dominant_style": "primary communication style",
        "secondary_styles": ["other styles used"],
        "style_consistency": "how consistent across conversations",
        "adaptability": "how well they adjust to different situations"
    },
    "emotional_profile": {
        "baseline_regulation": "typical emotional regulation level",
        "common_triggers": ["identified triggers"],
        "coping_strategies": {
            "healthy": ["strategies"],
            "unhealthy": ["patterns to work on"]
        },
        "emotional_intelligence_indicators": "assessment"
    },
    "behavioral_patterns": {
        "frequent_behaviors": [
            {
                "behavior": "name",
                "frequency": "how often",
                "contexts": "when it appears",
                "impact": "effect on conversations"
            }
        ],
        "rare_behaviors": ["behaviors that appear occasionally"],
        "evolving_patterns": "how patterns have changed over time"
    },
    "attachment_profile": {
        "primary_style": "attachment style",
        "triggers_for_insecurity": ["situations that activate attachment fears"],
        "secure_base_behaviors": ["when they show security"]
    },
    "conflict_profile": {
        "approach": "how they handle conflict",
        "strengths_in_conflict": ["what they do well"],
        "challenges_in_conflict": ["areas for growth"],
        "resolution_patterns": "how conflicts typically resolve"
    },
    "strengths": [
        {
            "strength": "name",
            "evidence": "how it manifests",
            "impact": "positive effect"
        }
    ],
    "growth_opportunities": [
        {
            "area": "name",
            "current_pattern": "what happens now",
            "suggested_growth": "actionable suggestion",
            "resources": "what might help"
        }
    ],
    "communication_recommendations": {
        "best_approaches_with_them": ["how to communicate effectively with this person"],
        "topics_to_approach_carefully": ["sensitive areas"],
        "conflict_resolution_strategies": ["specific strategies"],
        "relationship_potential": "assessment of relationship viability"
    },
    "red_flags_summary": ["concerning patterns if any"],
    "green_flags_summary": ["positive indicators"],
    "overall_assessment": "balanced final assessment"
}
`

const SelfProfileBody = `You are creating an unbiased self-analysis profile for the user based on their conversations.
Be honest, supportive, and constructive. Do not flatter - provide genuine insights.

User's conversation history:
{user_data}

Create an unbiased self-profile:
{
    "honest_summary": "Balanced 3-4 sentence overview - include both strengths and areas for growth",
    "self_awareness_indicators": {
        "level": "high/moderate/low",
        "evidence": "how self-aware they appear in conversations",
        "blind_spots": ["potential areas they may not see clearly"]
    },
    "communication_self_profile": {
        "how_you_come_across": "honest assessment of how others likely perceive them",
        "intended_vs_actual": "gap between intention and impact",
        "strengths": ["genuine communication strengths"],
        "improvement_areas": ["honest areas for growth"]
    },
    "emotional_patterns": {
        "regulation_assessment": "honest evaluation",
        "triggers_identified": ["what sets them off"],
        "response_patterns": "how they typically respond to stress",
        "emotional_intelligence": "candid assessment"
    },
    "behavioral_tendencies": {
        "positive_patterns": [
            {
                "behavior": "name",
                "impact": "positive effect",
                "continue_because": "why this helps"
            }
        ],
        "patterns_to_examine": [
            {
                "behavior": "name",
                "current_impact": "effect on conversations",
                "alternative_approach": "what might work better",
                "why_change": "honest reason"
            }
        ]
    },
    "relationship_patterns": {
        "your_role_in_dynamics": "honest look at what you contribute",
        "patterns_across_relationships": "recurring themes",
        "what_you_attract": "types of dynamics you tend to create/enter",
        "responsibility_taking": "how well you own your part"
    },
    "honest_strengths": [
        {
            "strength": "genuine strength",
            "evidence": "how it shows",
            "leverage_it": "how to use it more"
        }
    ],
    "honest_growth_areas": [
        {
            "area": "genuine area for growth",
            "current_pattern": "what you do now",
            "impact": "how it affects others",
            "actionable_step": "specific thing to try",
            "expected_benefit": "what might improve"
        }
    ],
    "action_plan": {
        "immediate_focus": "one thing to work on now",
        "short_term_goals": ["1-2 month goals"],
        "long_term_development": ["ongoing growth areas"],
        "resources_suggested": ["books, practices, etc"]
    },
    "encouragement": "genuine supportive message acknowledging effort to self-improve"
}
`
